package main

import (
	"fmt"
	"os"
	"strings"
)

const version = "0.0.1-dev"

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		return runGenerate(os.Args[1:])
	}

	switch os.Args[1] {
	case "generate":
		return runGenerate(os.Args[2:])
	case "dev":
		return runDev(os.Args[2:])
	case "--version", "-v":
		fmt.Println("genclient", version)
		return 0
	case "--help", "-h":
		printUsage()
		return 0
	default:
		if strings.HasPrefix(os.Args[1], "-") {
			return runGenerate(os.Args[1:])
		}
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println("genclient - OpenAPI 3.0 to typed Go HTTP client generator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  genclient [flags]              Generate client (default)")
	fmt.Println("  genclient generate [flags]     Generate client")
	fmt.Println("  genclient dev [flags]          Watch the input document and regenerate on change")
	fmt.Println()
	fmt.Println("Global Flags:")
	fmt.Println("  --version, -v          Print version and exit")
	fmt.Println("  --help, -h             Print this help message")
	fmt.Println()
	fmt.Println("Generate Flags:")
	fmt.Println("  --input <path>         Path to the OpenAPI document (JSON or YAML)")
	fmt.Println("  --output <path>        Output path for the generated Go file")
	fmt.Println("  --config <path>        Path to genclient.config.json/.yaml")
	fmt.Println("  --package <name>       Generated package name (default: client)")
	fmt.Println("  --client-type <name>   Generated client struct name (default: Client)")
	fmt.Println("  --tag-routing <mode>   flat | tagged | both (default: both)")
	fmt.Println("  --dump-ir              Dump the lowered operation IR as JSON to stdout instead of generating")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  genclient --input openapi.json --output client/client.go")
	fmt.Println("  genclient generate --config genclient.config.yaml")
	fmt.Println("  genclient dev --input openapi.json --output client/client.go")
}
