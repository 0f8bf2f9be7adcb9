// Package mocks provides centralized mock implementations for testing.
//
// Store mocks use testify/mock so tests can assert on the exact calls a
// service makes. Auth and service mocks use function fields with default
// return values, which keeps handler tests short.
//
// Usage:
//
//	import "github.com/phrazzld/todo-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    users := new(mocks.UserStore)
//	    users.On("GetByID", mock.Anything, int64(1), domain.VisibleActive).
//	        Return(&domain.User{ID: 1}, nil)
//
//	    // Use the mock in your test...
//	    users.AssertExpectations(t)
//	}
package mocks
