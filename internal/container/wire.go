package container

import (
	"log/slog"

	"github.com/phrazzld/quill-api/internal/service"
	"github.com/phrazzld/quill-api/internal/store"
)

// Wire builds the application container around the given stores. Stores
// are shared; services are constructed per resolution from the registered
// stores, so replacing a store registration affects later resolutions.
func Wire(users store.UserStore, posts store.PostStore, logger *slog.Logger) *Container {
	if logger == nil {
		logger = slog.Default()
	}

	c := New()
	ProvideValue(c, logger)
	ProvideValue(c, users)
	ProvideValue(c, posts)

	Provide(c, func(c *Container) (service.UserService, error) {
		users, err := Resolve[store.UserStore](c)
		if err != nil {
			return nil, err
		}
		return service.NewUserService(users, MustResolve[*slog.Logger](c)), nil
	})
	Provide(c, func(c *Container) (service.PostService, error) {
		posts, err := Resolve[store.PostStore](c)
		if err != nil {
			return nil, err
		}
		return service.NewPostService(posts, MustResolve[*slog.Logger](c)), nil
	})

	return c
}
