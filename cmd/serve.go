/*
Copyright © 2026 kamecha

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kamecha/denops-translate.vim/internal/dispatcher"
	"github.com/kamecha/denops-translate.vim/internal/host"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve :Translate requests from Neovim over stdio",
	Long: `Run as a Neovim rpc job. plugin/translate.vim starts this command with
jobstart(..., {'rpc': v:true}) and calls the "translate" method with
[bang, start, end, mode, arg].

Logs go to stderr; stdout is the rpc channel.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		closeFn := func() error { return nil }
		defer func() {
			if err := closeFn(); err != nil {
				logger.Warn("failed to close history", "error", err)
			}
		}()

		err := host.Serve(ctx, os.Stdin, os.Stdout, func(e *host.Editor) (*dispatcher.Dispatcher, error) {
			d, c, err := buildDispatcher(cfg, e, e)
			if err != nil {
				return nil, err
			}
			closeFn = c
			return d, nil
		}, logger)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
