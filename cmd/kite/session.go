package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/kite/internal/config"
	"github.com/vango-dev/kite/pkg/dom/memdom"
	"github.com/vango-dev/kite/pkg/kite"
	"github.com/vango-dev/kite/pkg/vdom"
)

// session reconciles trees into a detached in-memory container.
type session struct {
	cfg    *config.Config
	doc    *memdom.Document
	root   *memdom.Node
	frames *kite.ManualFrames
	rt     *kite.Runtime
}

func newSession(cmd *cobra.Command) (*session, error) {
	dir, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		return nil, err
	}

	doc := memdom.NewDocument()
	frames := kite.NewManualFrames()
	return &session{
		cfg:    cfg,
		doc:    doc,
		root:   doc.Element("div"),
		frames: frames,
		rt:     kite.New(doc, kite.WithConfig(cfg), kite.WithFrames(frames)),
	}, nil
}

// mount reconciles v into the container and drains pending effects.
func (s *session) mount(v *vdom.VNode) error {
	if err := s.rt.MountNow(v, s.root); err != nil {
		return err
	}
	s.frames.FlushAll(s.cfg.MaxFlushFrames)
	return nil
}

// readTree decodes a vnode literal from path, or from stdin when path is "-".
func readTree(cmd *cobra.Command, path string) (*vdom.VNode, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return vdom.ParseJSON(data)
}
