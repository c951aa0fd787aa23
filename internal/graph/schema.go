package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/phrazzld/quill-api/internal/container"
	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/service"
	"github.com/phrazzld/quill-api/internal/store"
)

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*domain.User).ID().String(), nil
			},
		},
		"nickname": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*domain.User).Nickname(), nil
			},
		},
	},
})

var postType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Post",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*domain.Post).ID().String(), nil
			},
		},
		"content": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*domain.Post).Content(), nil
			},
		},
	},
})

// NewSchema builds the executable schema. Resolvers resolve their
// collaborators from c on every call.
// It fails when c lacks a registration a resolver depends on.
func NewSchema(c *container.Container) (graphql.Schema, error) {
	if err := checkRegistrations(c); err != nil {
		return graphql.Schema{}, err
	}
	r := &resolver{container: c}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"user": &graphql.Field{
				Type:        userType,
				Description: "Look up a user by id. Null when no user has that id.",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.observe("user", r.user),
			},
			"searchUser": &graphql.Field{
				Type:        userType,
				Description: "Look up a user by exact nickname. Null when nobody has it.",
				Args: graphql.FieldConfigArgument{
					"nickname": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.observe("searchUser", r.searchUser),
			},
			"post": &graphql.Field{
				Type:        postType,
				Description: "Look up a post by id. Null when no post has that id.",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.observe("post", r.post),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"nickname": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.observe("createUser", r.createUser),
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"content": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.observe("createPost", r.createPost),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

func checkRegistrations(c *container.Container) error {
	required := []struct {
		name       string
		registered bool
	}{
		{"store.UserStore", container.Has[store.UserStore](c)},
		{"store.PostStore", container.Has[store.PostStore](c)},
		{"service.UserService", container.Has[service.UserService](c)},
		{"service.PostService", container.Has[service.PostService](c)},
	}
	for _, r := range required {
		if !r.registered {
			return fmt.Errorf("build schema: %s: %w", r.name, container.ErrNotRegistered)
		}
	}
	return nil
}
