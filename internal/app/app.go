// Package app implements the lucid command line interface.
package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "analyze":
		return runAnalyze(args[1:])
	case "simplify":
		return runSimplify(args[1:])
	case "translate":
		return runTranslate(args[1:])
	case "score":
		return runScore(args[1:])
	case "run":
		return runPipeline(args[1:])
	case "convert":
		return runConvert(args[1:])
	case "validate":
		return runValidate(args[1:])
	case "history":
		return runHistory(args[1:])
	case "serve":
		return runServe(args[1:])
	case "health":
		return runHealth(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "lucid CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  lucid <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  analyze    Compute readability metrics for a document")
	fmt.Fprintln(os.Stderr, "  simplify   Rewrite a document in plainer language")
	fmt.Fprintln(os.Stderr, "  translate  Translate a document")
	fmt.Fprintln(os.Stderr, "  score      Estimate translation fidelity via back-translation BLEU")
	fmt.Fprintln(os.Stderr, "  run        Import, simplify, translate and score in one pass")
	fmt.Fprintln(os.Stderr, "  convert    Convert a document between supported formats")
	fmt.Fprintln(os.Stderr, "  validate   Validate style profile JSON files")
	fmt.Fprintln(os.Stderr, "  history    List or show stored pipeline runs")
	fmt.Fprintln(os.Stderr, "  serve      Start the Echo API server")
	fmt.Fprintln(os.Stderr, "  health     Check configuration and connectivity")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"lucid <command> -h\" for command-specific flags.")
}
