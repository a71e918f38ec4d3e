// Command eroth computes erosion thickness on a 3D medial skeleton read
// from a PLY file, writing back an annotated skeleton and an erosion-path
// mesh.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	flagInputSkel         string
	flagDistMax           float32
	flagSubdivMax         int
	flagPathout           string
	flagOutputSkel        string
	flagOutputErosionPath string
)

// rootCmd is the single command of the eroth binary: read a skeleton,
// compute erosion thickness, write the two output PLY files.
//
// Exit codes: 0 success, non-zero on any file-open, parse, or
// invariant-violation error.
var rootCmd = &cobra.Command{
	Use:   "eroth",
	Short: "Compute erosion thickness on a 3D medial skeleton",
	Long: `eroth reads a PLY medial-skeleton mesh (vertices with radii, edges,
triangular faces), subdivides long edges, decomposes each node's local
link graph into sectors, and propagates a grassfire burn-front from the
boundary inward. It writes back the input skeleton annotated with a
per-vertex erosion_thickness property and color, plus an erosion-path
mesh recording each node's predecessor arc.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEroth,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&flagInputSkel, "input_skel", "", "input skeleton PLY file (required)")
	flags.Float32Var(&flagDistMax, "dist_max", 0.005, "maximum segment length before subdivision")
	flags.IntVar(&flagSubdivMax, "subdiv_max", 1, "cap on subdivisions per edge")
	flags.StringVar(&flagPathout, "pathout", "./output/", "output directory, created if absent")
	flags.StringVar(&flagOutputSkel, "output_skel", "skeleton_erosion_thickness.ply", "annotated skeleton output filename")
	flags.StringVar(&flagOutputErosionPath, "output_erosion_path", "erosion_path.ply", "erosion-path output filename")
	_ = rootCmd.MarkFlagRequired("input_skel")
}
