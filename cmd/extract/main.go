// Command extract runs the upload pipeline on a local file and prints the
// resulting document stats as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"clearclause/internal/config"
	"clearclause/internal/extract"

	"github.com/joho/godotenv"
)

func main() {
	full := flag.Bool("full", false, "include the full extracted text")
	mediaType := flag.String("type", "", "media type; guessed from the extension and content when empty")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-full] [-type media/type] FILE\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load(".env")
	cfg := config.Load()

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	declared := *mediaType
	if declared == "" {
		declared = mime.TypeByExtension(filepath.Ext(path))
	}
	resolved := extract.ResolveMediaType(declared, data)
	if err := extract.ValidateUpload(int64(len(data)), resolved, cfg.MaxUploadBytes()); err != nil {
		log.Fatal(err)
	}
	text, err := extract.Text(data, resolved)
	if err != nil {
		log.Fatal(err)
	}

	out := extract.Describe(filepath.Base(path), int64(len(data)), resolved, text)
	if !*full {
		out.Text = ""
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}
