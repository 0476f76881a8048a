package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/ruteri/pixelprops/api/propshandler"
	"github.com/ruteri/pixelprops/buildrecord"
	"github.com/ruteri/pixelprops/cmd/flags"
	"github.com/ruteri/pixelprops/common"
	"github.com/ruteri/pixelprops/interfaces"
	"github.com/ruteri/pixelprops/profiles"
	"github.com/ruteri/pixelprops/spoof"
	"github.com/ruteri/pixelprops/storage"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Exit code returned when a guard check refuses the request.
const exitAborted = 3

var flagPackage = &cli.StringFlag{
	Name:     "package",
	Required: true,
	Usage:    "package name to apply overrides for",
}
var flagPackages = &cli.StringSliceFlag{
	Name:  "package",
	Usage: "package to apply before the guard check, may be repeated",
}
var flagRecord = &cli.StringFlag{
	Name:  "record",
	Usage: "baseline build.prop path or file:// / s3:// URI; defaults to an unknown build",
}
var flagFrame = &cli.StringSliceFlag{
	Name:  "frame",
	Usage: "call stack frame function name, innermost first, may be repeated",
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "pixelpropsctl",
		Usage:   "Inspect and exercise device identity overrides",
		Version: common.Version,
		Flags:   append([]cli.Flag{flags.LogServiceFlagFn("pixelpropsctl")}, flags.LogFlags...),
		Commands: []*cli.Command{
			{
				Name:   "profiles",
				Usage:  "print the compiled-in profile table as YAML",
				Action: printProfiles,
			},
			{
				Name:   "apply",
				Usage:  "apply overrides to a baseline record offline and print the changed fields",
				Flags:  []cli.Flag{flagPackage, flagRecord},
				Action: applyOffline,
			},
			{
				Name:   "guard",
				Usage:  "classify a certificate chain request offline",
				Flags:  []cli.Flag{flagFrame, flagPackages},
				Action: guardOffline,
			},
			{
				Name:  "remote",
				Usage: "talk to a running pixelpropsd",
				Flags: []cli.Flag{flags.ServerURLFlag},
				Subcommands: []*cli.Command{
					{
						Name:   "apply",
						Usage:  "apply overrides for a package",
						Flags:  []cli.Flag{flagPackage},
						Action: remoteApply,
					},
					{
						Name:   "guard",
						Usage:  "check a certificate chain request",
						Flags:  []cli.Flag{flagFrame},
						Action: remoteGuard,
					},
					{
						Name:   "record",
						Usage:  "print the daemon's current build record",
						Action: remoteRecord,
					},
					{
						Name:   "state",
						Usage:  "print the impersonation latch",
						Action: remoteState,
					},
				},
			},
		},
	}
}

func printProfiles(cCtx *cli.Context) error {
	enc := yaml.NewEncoder(cCtx.App.Writer)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(propshandler.DescribeTable(profiles.Default()))
}

func loadRecord(ctx context.Context, location string, logger *slog.Logger) (*buildrecord.Record, error) {
	if location == "" {
		return buildrecord.NewUnknown(), nil
	}

	var src interfaces.RecordSource
	if strings.Contains(location, "://") {
		var err error
		src, err = storage.NewSourceFactory(logger).SourceFor(interfaces.RecordSourceLocation(location))
		if err != nil {
			return nil, err
		}
	} else {
		src = storage.NewFileSource(location, logger)
	}
	return storage.LoadRecord(ctx, src)
}

func applyOffline(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)
	record, err := loadRecord(cCtx.Context, cCtx.String(flagRecord.Name), logger)
	if err != nil {
		return err
	}

	pkg := cCtx.String(flagPackage.Name)
	state := spoof.NewState()
	engine := spoof.NewEngine(record, state, nil, logger)

	before := record.Snapshot()
	engine.ApplyOverridesForPackage(pkg)
	changes := buildrecord.Diff(before, record.Snapshot())

	w := cCtx.App.Writer
	profileName := "none"
	if p := engine.Table().ProfileFor(pkg); p != nil {
		profileName = p.Name
	}
	fmt.Fprintf(w, "package: %s\nprofile: %s\nspoof latched: %t\n", pkg, profileName, state.IsSet())
	writeChanges(w, changes)
	return nil
}

func writeChanges(w io.Writer, changes []buildrecord.Change) {
	if len(changes) == 0 {
		fmt.Fprintln(w, "no changes")
		return
	}
	for _, c := range changes {
		fmt.Fprintf(w, "%s: %q -> %q\n", c.Name, c.Old.Str(), c.New.Str())
	}
}

func framesFromFlags(cCtx *cli.Context) []interfaces.Frame {
	var frames []interfaces.Frame
	for _, fn := range cCtx.StringSlice(flagFrame.Name) {
		frames = append(frames, interfaces.Frame{Function: fn})
	}
	return frames
}

func reportGuard(w io.Writer, err error) error {
	switch {
	case err == nil:
		fmt.Fprintln(w, "proceed")
		return nil
	case errors.Is(err, interfaces.ErrUnsupportedOperation):
		return cli.Exit("abort: "+err.Error(), exitAborted)
	default:
		return err
	}
}

func guardOffline(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)
	state := spoof.NewState()
	engine := spoof.NewEngine(buildrecord.NewUnknown(), state, nil, logger)
	for _, pkg := range cCtx.StringSlice(flagPackages.Name) {
		engine.ApplyOverridesForPackage(pkg)
	}

	guard := spoof.NewGuard(state, spoof.StaticStack(framesFromFlags(cCtx)), logger)
	return reportGuard(cCtx.App.Writer, guard.GuardCertificateChainRequest())
}

func client(cCtx *cli.Context) *propshandler.Client {
	return propshandler.NewClient(cCtx.String(flags.ServerURLFlag.Name))
}

func remoteApply(cCtx *cli.Context) error {
	resp, err := client(cCtx).Apply(cCtx.Context, cCtx.String(flagPackage.Name))
	if err != nil {
		return err
	}
	profileName := resp.Profile
	if profileName == "" {
		profileName = "none"
	}
	fmt.Fprintf(cCtx.App.Writer, "package: %s\nprofile: %s\nspoof latched: %t\n", resp.Package, profileName, resp.SpoofLatched)
	return nil
}

func remoteGuard(cCtx *cli.Context) error {
	err := client(cCtx).GuardCertificateChain(cCtx.Context, framesFromFlags(cCtx))
	return reportGuard(cCtx.App.Writer, err)
}

func remoteRecord(cCtx *cli.Context) error {
	fields, err := client(cCtx).Record(cCtx.Context)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(cCtx.App.Writer, "%s=%s\n", name, fields[name])
	}
	return nil
}

func remoteState(cCtx *cli.Context) error {
	latched, err := client(cCtx).State(cCtx.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(cCtx.App.Writer, "spoof latched: %t\n", latched)
	return nil
}
