// Command icosalattice converts between point codes of the icosahedral
// lattice and positions on the sphere.
//
//	icosalattice convert E12 G3021
//	icosalattice locate --lat 63.3956 --lng 32.6444 --max-iterations 8
//	icosalattice neighbors -o geojson C1
//	icosalattice float encode H2
//	icosalattice describe L33
//	icosalattice measure --radius 6371 C D E
//	icosalattice path --direction DL C1 K1
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Kuhron/icosalattice/conversion"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env is the state every command runs with, built from the resolved
// configuration before the command runs.
type env struct {
	cfg  Config
	log  *logrus.Logger
	conv conversion.Converter
}

func (e *env) init(cfg Config, logOut io.Writer) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	e.log = logrus.New()
	e.log.SetOutput(logOut)
	e.log.SetLevel(level)
	e.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if e.conv, err = conversion.NewConverter(cfg.Method); err != nil {
		return err
	}
	e.cfg = cfg
	e.log.WithFields(logrus.Fields{
		"method":     cfg.Method,
		"iterations": cfg.MaxIterations,
		"output":     cfg.Output,
	}).Debug("resolved configuration")
	return nil
}

func newRootCommand() *cobra.Command {
	var flags flagValues
	e := &env{}
	root := &cobra.Command{
		Use:           "icosalattice",
		Short:         "convert between icosahedral lattice point codes and positions on the sphere",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			return e.init(cfg, cmd.ErrOrStderr())
		},
	}
	flags.register(root.PersistentFlags())
	root.AddCommand(
		newConvertCommand(e),
		newLocateCommand(e),
		newNeighborsCommand(e),
		newFloatCommand(e),
		newDescribeCommand(e),
		newMeasureCommand(e),
		newPathCommand(e),
		newRandomCommand(e),
	)
	return root
}
