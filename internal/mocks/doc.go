// Package mocks provides centralized mock implementations for testing.
//
// Store mocks are built on testify/mock so tests can assert call counts and
// arguments:
//
//	users := new(mocks.UserStore)
//	users.On("Save", mock.Anything, mock.Anything).Return(store.ErrDuplicate).Once()
//
// Service mocks use function fields instead:
//
//	svc := &mocks.MockUserService{
//	    CreateUserFn: func(ctx context.Context, nickname string) (*domain.User, error) {
//	        return domain.NewUser(nickname), nil
//	    },
//	}
package mocks
