// Command saaamc compiles a single SAAAM source file and prints the
// emitted target text, or its diagnostics on failure.
package main

import (
	"fmt"
	"os"

	"github.com/saaam-lang/saaamc/pkg/compiler"
	"github.com/saaam-lang/saaamc/pkg/utils"
)

const demoSource = `function create() {
  var x = 0;
}

function step(dt) {
  if (keyboard_check(vk_left)) {
    position.x -= 1;
  }
}

function draw(ctx) {
  draw_text(10, 10, "hello");
}
`

func main() {
	src := demoSource
	if len(os.Args) > 1 {
		loaded, warning, err := utils.LoadSource(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if warning != "" {
			fmt.Fprintln(os.Stderr, "warning:", warning)
		}
		src = loaded
	}

	result := compiler.Compile(src)

	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, w.String())
	}
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, e.String())
	}

	fmt.Print(result.Output)

	if !result.Success {
		os.Exit(1)
	}
}
