package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/phrazzld/quill-api/internal/container"
	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/metrics"
	"github.com/phrazzld/quill-api/internal/service"
	"github.com/phrazzld/quill-api/internal/store"
)

type resolver struct {
	container *container.Container
}

// observe converts errors from fn into *Error and counts the outcome.
func (r *resolver) observe(field string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		result, err := fn(p)
		if err != nil {
			err = toGraphQLError(p.Context, field, err)
		}
		metrics.GraphQLOperations.WithLabelValues(field, outcome(err)).Inc()
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func (r *resolver) user(p graphql.ResolveParams) (interface{}, error) {
	id, err := domain.ParseID(p.Args["id"].(string))
	if err != nil {
		return nil, err
	}

	users, err := container.Resolve[store.UserStore](r.container)
	if err != nil {
		return nil, err
	}

	user, err := users.Find(p.Context, id)
	if store.IsNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *resolver) searchUser(p graphql.ResolveParams) (interface{}, error) {
	users, err := container.Resolve[store.UserStore](r.container)
	if err != nil {
		return nil, err
	}

	user, err := users.FindByNickname(p.Context, p.Args["nickname"].(string))
	if store.IsNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *resolver) post(p graphql.ResolveParams) (interface{}, error) {
	id, err := domain.ParseID(p.Args["id"].(string))
	if err != nil {
		return nil, err
	}

	posts, err := container.Resolve[store.PostStore](r.container)
	if err != nil {
		return nil, err
	}

	post, err := posts.Find(p.Context, id)
	if store.IsNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *resolver) createUser(p graphql.ResolveParams) (interface{}, error) {
	users, err := container.Resolve[service.UserService](r.container)
	if err != nil {
		return nil, err
	}

	user, err := users.CreateUser(p.Context, p.Args["nickname"].(string))
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *resolver) createPost(p graphql.ResolveParams) (interface{}, error) {
	posts, err := container.Resolve[service.PostService](r.container)
	if err != nil {
		return nil, err
	}

	post, err := posts.CreatePost(p.Context, p.Args["content"].(string))
	if err != nil {
		return nil, err
	}
	return post, nil
}
