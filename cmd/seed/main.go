// Command seed fills the configured store with demo data.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"postboard/internal/bootstrap"
	"postboard/internal/config"
	"postboard/internal/seed"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run returns every failure so main can exit non-zero after the runtime is closed.
func run(args []string) error {
	opts := seed.DefaultOptions()
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.IntVar(&opts.Users, "users", opts.Users, "Number of profiles to create")
	fs.IntVar(&opts.Posts, "posts", opts.Posts, "Number of posts to create")
	fs.IntVar(&opts.MaxLikes, "max-likes", opts.MaxLikes, "Upper bound of likes per post")
	fs.IntVar(&opts.MaxComments, "max-comments", opts.MaxComments, "Upper bound of comments per post")
	fs.Int64Var(&opts.Seed, "seed", 0, "Random seed (0 picks one)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	rt, err := bootstrap.InitRuntime(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init runtime: %w", err)
	}
	defer func() {
		if cerr := rt.Close(ctx); cerr != nil {
			log.Printf("Runtime shutdown error: %v", cerr)
		}
	}()

	log.Printf("Seeding %d profiles and %d posts into %s", opts.Users, opts.Posts, cfg.StoreDriver)
	res, err := seed.NewSeeder(rt.Posts, rt.Profiles, opts).Run(ctx)
	if err != nil {
		return fmt.Errorf("seeding failed after %d posts: %w", res.Posts, err)
	}
	log.Printf("Created %d profiles, %d posts, %d likes, %d comments", res.Profiles, res.Posts, res.Likes, res.Comments)
	return nil
}
