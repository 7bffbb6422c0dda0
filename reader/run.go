// Package reader implements command line navigation over documents: pages
// are found at source path, loaded and navigated by scripted input with
// speech, highlight and cues written as text.
package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"axnav/common"
	"axnav/document"
	"axnav/navigator"
	"axnav/state"
)

// output opens destination named by command argument, STDOUT when empty.
func output(fname string) (io.Writer, func() error, error) {
	if len(fname) == 0 {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(fname)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create destination file '%s': %w", fname, err)
	}
	return f, f.Close, nil
}

// reportName makes name for report entry out of page location.
func reportName(prefix string, p Page) string {
	return prefix + "/" + slug.Make(strings.TrimSuffix(p.String(), path.Ext(p.Name))) + ".txt"
}

func load(ctx context.Context, p Page, fragment string, env *state.LocalEnv, log *zap.Logger) (*document.Loaded, error) {
	data, err := p.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read page: %w", err)
	}
	return document.Load(ctx, bytes.NewReader(data), p.Name, document.Options{
		Fragment:         fragment,
		UserStylesheet:   env.UserStylesheet,
		Open:             p.Resource,
		EstimateGeometry: env.Cfg.Document.EstimateGeometry,
		Columns:          env.Cfg.Document.Columns,
		Media:            env.Cfg.Document.Media,
	}, log)
}

func pages(ctx context.Context, cmd *cli.Command, log *zap.Logger) ([]Page, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return nil, errors.New("no input source has been specified")
	}
	res, err := Resolve(ctx, src, codePage(cmd.String("force-zip-cp"), log), log)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("no pages found at %s", src)
	}
	return res, nil
}

// Run is action of "read" command.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("read")

	if err := env.Prepare(); err != nil {
		return err
	}

	steps, err := ParseScript(cmd.String("script"))
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		steps = []Step{{Kind: StepKindRead}}
	}

	list, err := pages(ctx, cmd, log)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	out, closeOut, err := output(cmd.String("output"))
	if err != nil {
		return err
	}
	defer closeOut()

	log.Info("Reading starting", zap.Int("pages", len(list)), zap.Int("steps", len(steps)))
	defer func(start time.Time) {
		log.Info("Reading completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	fragment := cmd.String("fragment")
	for _, p := range list {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := readPage(ctx, p, fragment, steps, out, env, log); err != nil {
			log.Error("Unable to read page", zap.Stringer("page", p), zap.Error(err))
		}
		// fragment only applies to the page navigation was propagated to
		fragment = ""
	}
	return nil
}

func readPage(ctx context.Context, p Page, fragment string, steps []Step, out io.Writer, env *state.LocalEnv, log *zap.Logger) error {
	doc, err := load(ctx, p, fragment, env, log)
	if err != nil {
		return err
	}

	var transcript bytes.Buffer
	w := io.MultiWriter(out, &transcript)
	fmt.Fprintf(w, "== %s\n", p)

	s, err := NewSession(doc, env.Cfg, env.Splitter, w, log)
	if err != nil {
		return err
	}
	defer s.Close()

	err = s.Play(ctx, steps)
	if errors.Is(err, navigator.ErrNothingToRead) {
		log.Warn("Nothing to read", zap.Stringer("page", p))
		err = nil
	}
	env.Rpt.StoreData(reportName("transcript", p), transcript.Bytes())
	log.Debug("Page done", zap.Stringer("page", p), zap.Duration("virtual", s.Elapsed()))
	return err
}

// Tree is action of "tree" command.
func Tree(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("tree")

	if err := env.Prepare(); err != nil {
		return err
	}

	src := common.SourceNav
	if cmd.Bool("pointer") {
		src = common.SourcePoint
	}

	list, err := pages(ctx, cmd, log)
	if err != nil {
		return err
	}

	out, closeOut, err := output(cmd.String("output"))
	if err != nil {
		return err
	}
	defer closeOut()

	for _, p := range list {
		doc, err := load(ctx, p, "", env, log)
		if err != nil {
			log.Error("Unable to load page", zap.Stringer("page", p), zap.Error(err))
			continue
		}
		ctrl, err := navigator.New(doc, navigator.Options{CacheClassification: env.Cfg.Navigation.Cache}, log)
		if err != nil {
			return err
		}
		tw := Dump(doc, ctrl.Classifier(), ctrl.Engine(), ctrl.Describer(), src)

		fmt.Fprintf(out, "== %s\n", p)
		if _, err := tw.WriteTo(out); err != nil {
			return fmt.Errorf("unable to write tree: %w", err)
		}
		env.Rpt.StoreData(reportName("tree", p), []byte(tw.String()))
	}
	return nil
}
