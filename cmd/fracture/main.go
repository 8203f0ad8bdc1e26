// Command fracture runs the Fracture 2D sandbox.
package main

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

func init() { runtime.LockOSThread() }

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fracture",
	Short: "Fracture 2D rendering sandbox",
	Long: `Fracture opens a window and renders the sandbox scene: a grid of
flat-coloured quads, a textured square and a logo, driven by an orthographic
camera controller (arrow keys move, Q/E roll, scroll zooms, middle mouse pans).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./fracture.yaml)")
	rootCmd.AddCommand(runCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
