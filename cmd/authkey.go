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
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamecha/denops-translate.vim/internal/authkey"
)

var authkeyCmd = &cobra.Command{
	Use:   "authkey",
	Short: "Manage the DeepL auth key file",
}

var authkeyPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where the DeepL auth key is read from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cfg.AuthKeyPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var authkeySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the DeepL auth key (reads stdin when no key is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cfg.AuthKeyPath()
		if err != nil {
			return err
		}

		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			fmt.Fprintf(os.Stderr, "DeepL auth key: ")
			scanner := bufio.NewScanner(os.Stdin)
			if scanner.Scan() {
				key = scanner.Text()
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read key: %w", err)
			}
		}

		if err := authkey.Save(path, key); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved DeepL auth key to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authkeyCmd)

	authkeyCmd.AddCommand(authkeyPathCmd)
	authkeyCmd.AddCommand(authkeySetCmd)
}
