package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/genai-bias/biasplot/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached chart artifacts and provider replies",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every cached artifact and reply",
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("locate cache: %w", err)
				}
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					printInfo("Nothing cached yet")
					return nil
				}
				n, err := clearCache(dir)
				if err != nil {
					return err
				}
				printSuccess("Removed %d cached entries", n)
				printDetail("Directory: %s", dir)
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("locate cache: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

// cacheDir is $XDG_CACHE_HOME/biasplot, falling back to ~/.cache/biasplot.
func cacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// newCache opens the on-disk cache. Without a usable home directory the run
// proceeds uncached rather than failing.
func newCache(disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func clearCache(dir string) (int, error) {
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return 0, err
	}
	defer c.Close()
	fc, ok := c.(*cache.FileCache)
	if !ok {
		return 0, fmt.Errorf("unexpected cache type %T", c)
	}
	return fc.Clear()
}
