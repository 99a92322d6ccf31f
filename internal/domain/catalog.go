package domain

// SchoolClass is a grade level such as "Class 10".
type SchoolClass struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Subject belongs to exactly one class.
type Subject struct {
	ID      int64  `json:"id"`
	ClassID int64  `json:"class_id"`
	Name    string `json:"name"`
}

// Chapter belongs to exactly one subject.
type Chapter struct {
	ID        int64  `json:"id"`
	SubjectID int64  `json:"subject_id"`
	Title     string `json:"title"`
}

// ChapterContext is the resolved chapter -> subject -> class chain used to
// build generation prompts.
type ChapterContext struct {
	Class   SchoolClass
	Subject Subject
	Chapter Chapter
}
