package main

import (
	"context"
	"fmt"
	"os"

	"github.com/delaneyj/reactant"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

// depsCommand builds a small demo object graph, runs a handful of effects
// over it, and dumps the live Dep registry: one row per tracked target,
// showing how many keys and subscribers it carries.
func depsCommand() *cli.Command {
	return &cli.Command{
		Name:   "deps",
		Usage:  "Dump the live dependency registry for a demo reactive graph",
		Action: runDeps,
	}
}

func runDeps(ctx context.Context, cmd *cli.Command) error {
	rt := reactant.New()

	user := reactant.Reactive(reactant.NewObjectFrom(rt, map[string]any{
		"name": "ada",
		"age":  36,
	}))
	tags := reactant.Reactive(reactant.NewArray(rt, "admin", "staff"))
	settings := reactant.Reactive(reactant.NewMap[string, bool](rt))
	settings.Set("darkMode", true)

	reactant.Effect(rt, func() { _ = user.Get("name") }, reactant.EffectOptions{})
	reactant.Effect(rt, func() { _ = user.Get("age") }, reactant.EffectOptions{})
	reactant.Effect(rt, func() { _ = tags.Len() }, reactant.EffectOptions{})
	reactant.Effect(rt, func() {
		v, _ := settings.Get("darkMode")
		_ = v
	}, reactant.EffectOptions{})

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"target", "keys tracked", "total subscribers"})

	for _, target := range rt.RegistrySnapshot() {
		depsByKey := rt.DepsOf(target)
		subs := 0
		for _, d := range depsByKey {
			subs += len(d.Subscribers())
		}
		table.Append([]string{
			fmt.Sprintf("%T@%p", target, target),
			humanize.Comma(int64(len(depsByKey))),
			humanize.Comma(int64(subs)),
		})
	}
	table.Render()
	return nil
}
