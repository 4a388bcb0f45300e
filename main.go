package main

import "github.com/kamecha/denops-translate.vim/cmd"

func main() {
	cmd.Execute()
}
