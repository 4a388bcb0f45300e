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
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamecha/denops-translate.vim/internal/dispatcher"
	"github.com/kamecha/denops-translate.vim/internal/option"
)

var (
	reverse   bool
	inputFile string
	startPos  string
	endPos    string
	selMode   string
)

var translateCmd = &cobra.Command{
	Use:   "translate [arg]",
	Short: "Translate text from the shell the way :Translate does",
	Long: `Translate text using the same argument rules as :Translate.

The argument is split on spaces; double quotes keep spaces together.
  - one token        translate the token itself
  - none or two      translate the selection (two tokens name source and target)
  - three or more    translate the third token

The selection is read from --input (or stdin) and trimmed by --start, --end
and --mode exactly like an editor selection.

Examples:
  denops-translate translate hello
  denops-translate translate 'ja en' -i notes.txt --start 3:0 --end 5:10 --mode v
  echo "good morning" | denops-translate translate -r`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var arg string
		if len(args) == 1 {
			arg = args[0]
		}

		start, err := parsePosition(startPos)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		end, err := parsePosition(endPos)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}

		src := &readerLines{open: func() (io.ReadCloser, error) {
			if inputFile == "" || inputFile == "-" {
				return io.NopCloser(os.Stdin), nil
			}
			return os.Open(inputFile)
		}}

		d, closeFn, err := buildDispatcher(cfg, src, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		lines, err := d.Translate(context.Background(), dispatcher.Args{
			Reverse: reverse,
			Start:   start,
			End:     end,
			Mode:    selMode,
			Arg:     arg,
		})
		if err != nil {
			return err
		}

		for _, l := range lines {
			fmt.Println(l)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Swap source and target languages (like :Translate!)")
	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "File to read the selection from (default stdin)")
	translateCmd.Flags().StringVar(&startPos, "start", "1:0", "Selection start as LINE:COL (line one-based, col zero-based)")
	translateCmd.Flags().StringVar(&endPos, "end", "2147483647:2147483647", "Selection end as LINE:COL (col exclusive)")
	translateCmd.Flags().StringVar(&selMode, "mode", option.ModeLine, `Selection mode: "v", "V" or "^V"`)
}

// parsePosition parses LINE:COL.
func parsePosition(s string) (option.Position, error) {
	var pos option.Position

	line, col, ok := strings.Cut(s, ":")
	if !ok {
		return pos, fmt.Errorf("expected LINE:COL, got %q", s)
	}

	var err error
	if pos.Line, err = strconv.Atoi(line); err != nil {
		return pos, fmt.Errorf("invalid line %q", line)
	}
	if pos.Col, err = strconv.Atoi(col); err != nil {
		return pos, fmt.Errorf("invalid column %q", col)
	}
	if pos.Line < 1 {
		return pos, fmt.Errorf("line must be at least 1, got %d", pos.Line)
	}
	return pos, nil
}

// readerLines serves a line range from a file, opened only when the
// selection is actually needed.
type readerLines struct {
	open func() (io.ReadCloser, error)
}

func (r *readerLines) Lines(ctx context.Context, start, end int) ([]string, error) {
	f, err := r.open()
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		if n < start {
			continue
		}
		if n > end {
			break
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}
