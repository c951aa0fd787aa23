// Package main implements a command that creates users and posts through
// the same services the API server uses, printing the IDs it assigns.
//
//	seed -user ada -user grace -post "hello world"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/quill-api/internal/config"
	"github.com/phrazzld/quill-api/internal/container"
	"github.com/phrazzld/quill-api/internal/platform/backend"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/service"
)

// listFlag collects every occurrence of a repeatable flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Printf("seed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	var users, posts listFlag
	fs.Var(&users, "user", "nickname of a user to create (repeatable)")
	fs.Var(&posts, "post", "content of a post to create (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(users) == 0 && len(posts) == 0 {
		return fmt.Errorf("nothing to seed: pass -user or -post")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, closer, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	defer func() { _ = closer.Close() }()

	b, err := backend.Open(ctx, cfg.Database, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = b.Close() }()

	c := container.Wire(b.Users, b.Posts, appLogger)
	userService, err := container.Resolve[service.UserService](c)
	if err != nil {
		return err
	}
	postService, err := container.Resolve[service.PostService](c)
	if err != nil {
		return err
	}

	for _, nickname := range users {
		user, err := userService.CreateUser(ctx, nickname)
		if err != nil {
			return fmt.Errorf("create user %q: %w", nickname, err)
		}
		fmt.Fprintf(out, "user\t%s\t%s\n", user.ID(), user.Nickname())
	}
	for _, content := range posts {
		post, err := postService.CreatePost(ctx, content)
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		fmt.Fprintf(out, "post\t%s\n", post.ID())
	}
	return nil
}
