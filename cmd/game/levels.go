package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/younwookim/gemrun/internal/application/system"
)

func newLevelsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List configured levels",
		Long:  `Shows every configured level in play order with its gem and skull counts.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadAssets(flags.configDir, "")
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tMAP\tGEMS\tSKULLS\tSPAWN")
			for _, lv := range a.cfg.Levels {
				m, err := a.maps.Load(lv.Map)
				if err != nil {
					return err
				}
				objects, _ := m.ObjectLayer(a.cfg.Layers.Objects)
				plan, err := system.PlanSpawns(lv.Key, objects, system.NewSpawnRules(a.cfg, lv))
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", lv.Key, lv.Map, len(plan.Pickups), len(plan.Enemies), lv.SpawnPolicy)
			}
			return tw.Flush()
		},
	}
}
