// Package mocks provides shared test doubles for the revision API.
//
// Most mocks are function-field structs: set the Fn field for the method a
// test cares about and leave the rest to their zero-value defaults.
//
//	users := &mocks.MockUserService{
//		LoginFn: func(ctx context.Context, email, password string) (*service.LoginResult, error) {
//			return nil, service.ErrInvalidCredentials
//		},
//	}
//
// MockUserStore keeps accounts in memory so service tests can run signup,
// login and passcode flows without a database. MockProvider records every
// prompt it receives, and MockMailer records every message it is asked to
// send.
package mocks
