package main

type subjectSeed struct {
	Name     string
	Chapters []string
}

type classSeed struct {
	Name     string
	Subjects []subjectSeed
}

// extendedCatalog lists the opening chapters of each subject for Classes 6
// to 12. Classes 11 and 12 study Physics, Chemistry and Mathematics; the
// others study Mathematics and Science.
var extendedCatalog = []classSeed{
	{Name: "Class 6", Subjects: []subjectSeed{
		{Name: "Mathematics", Chapters: []string{
			"Knowing Our Numbers", "Whole Numbers", "Playing with Numbers", "Basic Geometrical Ideas",
		}},
		{Name: "Science", Chapters: []string{
			"Food: Where Does It Come From?", "Components of Food", "Fibre to Fabric", "Sorting Materials into Groups",
		}},
	}},
	{Name: "Class 7", Subjects: []subjectSeed{
		{Name: "Mathematics", Chapters: []string{
			"Integers", "Fractions and Decimals", "Data Handling", "Simple Equations",
		}},
		{Name: "Science", Chapters: []string{
			"Nutrition in Plants", "Nutrition in Animals", "Heat", "Acids, Bases and Salts",
		}},
	}},
	{Name: "Class 8", Subjects: []subjectSeed{
		{Name: "Mathematics", Chapters: []string{
			"Rational Numbers", "Linear Equations in One Variable", "Understanding Quadrilaterals", "Squares and Square Roots",
		}},
		{Name: "Science", Chapters: []string{
			"Crop Production and Management", "Microorganisms: Friend and Foe", "Force and Pressure", "Friction",
		}},
	}},
	{Name: "Class 9", Subjects: []subjectSeed{
		{Name: "Mathematics", Chapters: []string{
			"Number Systems", "Polynomials", "Coordinate Geometry", "Linear Equations in Two Variables",
		}},
		{Name: "Science", Chapters: []string{
			"Matter in Our Surroundings", "Is Matter Around Us Pure", "Atoms and Molecules", "Motion",
		}},
	}},
	{Name: "Class 10", Subjects: []subjectSeed{
		{Name: "Mathematics", Chapters: []string{
			"Real Numbers", "Polynomials", "Pair of Linear Equations in Two Variables", "Quadratic Equations",
		}},
		{Name: "Science", Chapters: []string{
			"Chemical Reactions and Equations", "Acids, Bases and Salts", "Light: Reflection and Refraction", "Electricity",
		}},
	}},
	{Name: "Class 11", Subjects: []subjectSeed{
		{Name: "Physics", Chapters: []string{
			"Units and Measurements", "Motion in a Straight Line", "Laws of Motion", "Work, Energy and Power",
		}},
		{Name: "Chemistry", Chapters: []string{
			"Some Basic Concepts of Chemistry", "Structure of Atom", "Chemical Bonding and Molecular Structure", "Thermodynamics",
		}},
		{Name: "Mathematics", Chapters: []string{
			"Sets", "Relations and Functions", "Trigonometric Functions", "Complex Numbers and Quadratic Equations",
		}},
	}},
	{Name: "Class 12", Subjects: []subjectSeed{
		{Name: "Physics", Chapters: []string{
			"Electric Charges and Fields", "Current Electricity", "Ray Optics and Optical Instruments", "Dual Nature of Radiation and Matter",
		}},
		{Name: "Chemistry", Chapters: []string{
			"Solutions", "Electrochemistry", "Chemical Kinetics", "Haloalkanes and Haloarenes",
		}},
		{Name: "Mathematics", Chapters: []string{
			"Relations and Functions", "Matrices", "Determinants", "Integrals",
		}},
	}},
}
