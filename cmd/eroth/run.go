package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ibujah/eroth/burngraph"
	"github.com/ibujah/eroth/result"
	"github.com/ibujah/eroth/scheduler"
	"github.com/ibujah/eroth/sector"
	"github.com/ibujah/eroth/skeleton"
	"github.com/ibujah/eroth/skeleton/ply"
)

// runEroth wires the full pipeline: read, build, decompose, schedule,
// build results, write.
func runEroth(cmd *cobra.Command, args []string) error {
	in, err := os.Open(flagInputSkel)
	if err != nil {
		return fmt.Errorf("eroth: opening input skeleton: %w", err)
	}
	defer in.Close()

	skel, err := ply.ReadSkeleton(in)
	if err != nil {
		return fmt.Errorf("eroth: reading input skeleton: %w", err)
	}

	g := burngraph.Build(skel,
		burngraph.WithDistMax(flagDistMax),
		burngraph.WithSubdivMax(flagSubdivMax))
	if err := g.CheckSymmetry(); err != nil {
		return fmt.Errorf("eroth: %w", err)
	}

	decomp := make([]*sector.Decomp, len(g.Nodes))
	for i := range g.Nodes {
		d, err := sector.Decompose(&g.Nodes[i])
		if err != nil {
			return fmt.Errorf("eroth: decomposing node %d: %w", i, err)
		}
		decomp[i] = d
	}

	schedResult := scheduler.Run(g, decomp, scheduler.WithLogger(newStepLogger(cmd)))

	path, err := result.Build(skel, g, schedResult)
	if err != nil {
		return fmt.Errorf("eroth: building result: %w", err)
	}

	if err := os.MkdirAll(flagPathout, 0o755); err != nil {
		return fmt.Errorf("eroth: creating output directory: %w", err)
	}

	if err := writeSkeleton(skel); err != nil {
		return err
	}
	return writeErosionPath(path)
}

func writeSkeleton(skel *skeleton.Skeleton) error {
	out := filepath.Join(flagPathout, flagOutputSkel)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("eroth: creating %s: %w", out, err)
	}
	defer f.Close()

	if err := ply.WriteSkeleton(f, skel); err != nil {
		return fmt.Errorf("eroth: writing %s: %w", out, err)
	}
	return nil
}

func writeErosionPath(path *result.ErosionPath) error {
	out := filepath.Join(flagPathout, flagOutputErosionPath)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("eroth: creating %s: %w", out, err)
	}
	defer f.Close()

	red, green, blue := colorFromBurnTime(path.Nodes)
	if err := ply.WriteErosionPath(f, path.Nodes, path.Edges, red, green, blue); err != nil {
		return fmt.Errorf("eroth: writing %s: %w", out, err)
	}
	return nil
}

// colorFromBurnTime linearly maps each node's burn time over the path's
// min/max range to the same R/G/B ramp skeleton.SetVertexColorFromProperty
// uses, so the erosion-path output carries color without the caller
// having to opt in.
func colorFromBurnTime(nodes []ply.ErosionNode) (red, green, blue []uint8) {
	if len(nodes) == 0 {
		return nil, nil, nil
	}

	minT, maxT := nodes[0].Time, nodes[0].Time
	for _, n := range nodes[1:] {
		if n.Time < minT {
			minT = n.Time
		}
		if n.Time > maxT {
			maxT = n.Time
		}
	}

	red = make([]uint8, len(nodes))
	green = make([]uint8, len(nodes))
	blue = make([]uint8, len(nodes))
	span := maxT - minT
	for i, n := range nodes {
		var t float32
		if span != 0 {
			t = (n.Time - minT) / span
		}
		red[i] = clampByte(255 * t)
		blue[i] = clampByte(255 * (1 - t))
	}
	return red, green, blue
}

func clampByte(x float32) uint8 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x + 0.5)
}
