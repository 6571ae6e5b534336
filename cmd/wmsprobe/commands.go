package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/wmsprobe/internal/menu"
	"github.com/crimson-sun/wmsprobe/internal/model"
	"github.com/crimson-sun/wmsprobe/internal/page"
	"github.com/crimson-sun/wmsprobe/internal/web"
)

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Fetch the layer menu and print it as nested HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			html, err := menu.Fetch(ctx, a.client, a.cfg.WMS.Dataset)
			if err != nil {
				return err
			}
			return a.out.Write(ctx, model.Artifact{
				Kind:        model.KindMenuHTML,
				Source:      a.client.Endpoint(),
				ContentType: "text/html",
				Body:        []byte(html),
			})
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <url>",
		Short: "Fetch a URL (relative to the endpoint) and print the body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			body, err := a.client.Go(ctx, args[0]).Wait()
			if err != nil {
				return err
			}
			return a.out.Write(ctx, model.Artifact{Kind: model.KindText, Source: args[0], Body: []byte(body)})
		},
	}
}

func newGetMapCmd(a *app) *cobra.Command {
	var sldPath string
	var fetch bool

	cmd := &cobra.Command{
		Use:   "getmap",
		Short: "Build a GetMap URL from SLD text",
		Long: `Reads SLD XML from --sld (a file, or - for stdin) and prints the GetMap URL
that renders it. With --fetch the image itself is downloaded and written to
the output instead; combine with --out map.png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sld, err := readSLD(cmd.InOrStdin(), sldPath)
			if err != nil {
				return err
			}

			p := page.New()
			p.SLD.SetValue(sld)

			var src string
			p.Map = page.ImageFunc(func(s string) { src = s })
			l := page.NewMapLoader(p, a.client.Endpoint())
			l.Request = a.cfg.MapRequest()
			l.Load()

			if !fetch {
				return a.out.Write(ctx, model.Artifact{Kind: model.KindMapURL, Body: []byte(src)})
			}
			img, contentType, err := a.client.GetBytes(ctx, src)
			if err != nil {
				return err
			}
			slog.Info("map image fetched", "bytes", len(img), "content_type", contentType)
			return a.out.Write(ctx, model.Artifact{
				Kind:        model.KindImage,
				Source:      src,
				ContentType: contentType,
				Body:        img,
			})
		},
	}
	cmd.Flags().StringVar(&sldPath, "sld", "-", "SLD file to read, - for stdin")
	cmd.Flags().BoolVar(&fetch, "fetch", false, "download the map image instead of printing its URL")
	return cmd
}

func readSLD(stdin io.Reader, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" || path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read sld: %w", err)
	}
	return string(data), nil
}

func newSampleCmd(a *app) *cobra.Command {
	var thenMap bool

	cmd := &cobra.Command{
		Use:   "sample <ref>",
		Short: "Load a sample SLD file into the input and print it",
		Long: `Fetches <ref> (relative to the endpoint) in the background and places the
body in the SLD input, then prints the input. With --map the GetMap URL for
the loaded SLD is printed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := page.New()
			sld, err := page.NewSampleLoader(p, a.client).Start(ctx, args[0]).Wait()
			if err != nil {
				return fmt.Errorf("sample: nothing loaded from %s: %w", args[0], err)
			}
			if err := a.out.Write(ctx, model.Artifact{Kind: model.KindText, Source: args[0], Body: []byte(sld)}); err != nil {
				return err
			}
			if !thenMap {
				return nil
			}
			l := page.NewMapLoader(p, a.client.Endpoint())
			l.Request = a.cfg.MapRequest()
			return a.out.Write(ctx, model.Artifact{Kind: model.KindMapURL, Body: []byte(l.URL())})
		},
	}
	cmd.Flags().BoolVar(&thenMap, "map", false, "also print the GetMap URL for the loaded SLD")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var listen, samplesDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen == "" {
				listen = a.cfg.Web.Listen
			}
			if samplesDir == "" {
				samplesDir = a.cfg.Web.SamplesDir
			}
			srv := web.New(a.client, web.Options{
				Dataset:    a.cfg.WMS.Dataset,
				Request:    a.cfg.MapRequest(),
				SamplesDir: samplesDir,
			})
			slog.Info("wmsprobe: starting", "endpoint", a.client.Endpoint(), "samples", samplesDir)
			return web.Run(cmd.Context(), listen, srv)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (env WMSPROBE_LISTEN)")
	cmd.Flags().StringVar(&samplesDir, "samples", "", "directory of sample SLD files (env WMSPROBE_SAMPLES_DIR)")
	return cmd
}
