package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/delaneyj/reactant"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	widthFlag = "width"
	depthFlag = "depth"
	itersFlag = "iters"
)

// benchCommand measures the cost of propagating a single ref write through a
// width x depth grid of computeds, one effect per column, the same shape as
// the source's propagate benchmark.
func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Measure propagation latency across a synthetic dependency grid",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{Name: widthFlag, Usage: "grid widths to try", Value: []int64{1, 10, 100}},
			&cli.IntSliceFlag{Name: depthFlag, Usage: "grid depths to try", Value: []int64{1, 10, 100}},
			&cli.IntFlag{Name: itersFlag, Usage: "writes per grid size", Value: 100},
		},
		Action: runBench,
	}
}

func runBench(ctx context.Context, cmd *cli.Command) error {
	widths := cmd.IntSlice(widthFlag)
	depths := cmd.IntSlice(depthFlag)
	iters := int(cmd.Int(itersFlag))

	tbl := table.NewWriter()
	tbl.SetTitle("reactant propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"grid", "avg", "min", "p75", "p99", "max"})

	for _, w := range widths {
		for _, d := range depths {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := reactant.New()
			src := reactant.NewRef(rt, 1)
			for i := int64(0); i < w; i++ {
				var last any = src
				for j := int64(0); j < d; j++ {
					prev := last
					last = reactant.NewComputed(rt, func() int {
						return unwrapInt(prev) + 1
					})
				}
				final := last
				reactant.Effect(rt, func() {
					unwrapInt(final)
				}, reactant.EffectOptions{})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Value() + 1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{{
				fmt.Sprintf("%d x %d", w, d),
				calc.Time.Avg, calc.Time.Min, calc.Time.P75, calc.Time.P99, calc.Time.Max,
			}})
		}
	}

	tbl.Render()
	return nil
}

func unwrapInt(v any) int {
	switch x := v.(type) {
	case *reactant.Ref[int]:
		return x.Value()
	case *reactant.Computed[int]:
		return x.Value()
	default:
		panic("unknown cell type")
	}
}
