// Command schema-generator regenerates the embedded JSON Schema from the
// config structs. Run via go generate in the config package.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hadSHOT/hooklint/config"
)

func main() {
	data, err := config.GenerateSchema()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate schema: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join("schema", "hooklint.embedded.schema.json")
	if err := os.WriteFile(outPath, append(data, '\n'), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s (%d bytes)\n", outPath, len(data)+1)
}
