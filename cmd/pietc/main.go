// Command pietc compiles a pictorial-language source (an image or a text
// grid of hex tokens) into a textual LLVM-compatible IR module.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"pietc/pkg/pipeline"
	"pietc/pkg/utils"
)

func main() {
	outPath := flag.String("o", "output.ll", "output IR file path")
	dumpBlocks := flag.Bool("dump-blocks", false, "print the discovered blocks to stdout")
	dumpGraph := flag.Bool("dump-graph", false, "print the control-flow graph to stdout")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: pietc [-o output.ll] [-dump-blocks] [-dump-graph] <input-path>")
		os.Exit(1)
	}
	inputPath, _, err := utils.GetPathInfo(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "pietc: resolving input path:", err)
		os.Exit(1)
	}

	res, err := pipeline.CompileFile(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pietc:", err)
		os.Exit(1)
	}

	if *dumpBlocks {
		fmt.Println("Blocks")
		fmt.Println(res.Blocks)
		fmt.Println()
	}
	if *dumpGraph {
		fmt.Println("Graph")
		fmt.Println(res.Graph)
		for _, n := range res.Graph.Nodes {
			fmt.Printf("  n%d: block=%d dp=%s cc=%s command=%s edges=%v\n",
				n.ID, n.BlockID, n.DP, n.CC, n.Command(), n.Edges)
		}
		fmt.Println()
	}

	if err := pipeline.VerifyModule(res); err != nil {
		log.Printf("pietc: generated IR failed verification: %v", err)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pietc: opening output file:", err)
		os.Exit(1)
	}
	defer out.Close()

	if _, err := out.WriteString(res.Module); err != nil {
		fmt.Fprintln(os.Stderr, "pietc: writing output file:", err)
		os.Exit(1)
	}
}
