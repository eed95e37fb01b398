package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/braheezy/gl-tut/config"
	"github.com/braheezy/gl-tut/display"
	"github.com/braheezy/gl-tut/log"
	"github.com/braheezy/gl-tut/metrics"
	"github.com/braheezy/gl-tut/model"
	"github.com/braheezy/gl-tut/shader"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var triangle = []float32{
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
	0.0, 0.5, 0.0,
}

func init() {
	// This is needed to arrange that main() runs on main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file, built-in defaults when empty")
	debug := flag.Bool("debug", false, "Enable debug logging")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address, overrides the config")
	flag.Parse()

	log.Setup(*debug)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("could not load config", "err", err)
		os.Exit(1)
	}
	if *metricsAddr != "" {
		cfg.Metrics.Listen = *metricsAddr
	}

	if err := run(cfg); err != nil {
		slog.Error("gl-tut failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Parse(path)
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Listen != "" {
		go func() {
			slog.Info("serving metrics", "addr", cfg.Metrics.Listen)
			if err := metrics.Serve(ctx, cfg.Metrics.Listen); err != nil {
				slog.Error("metrics stopped", "err", err)
			}
		}()
	}

	// Initialize GLFW, which is used to manage windows, user input, opengl contexts, and related
	// events.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialise GLFW: %w", err)
	}
	defer glfw.Terminate()

	manager := display.NewManager().FromConfig(cfg.Window)
	window, err := manager.Build()
	if err != nil {
		return err
	}
	defer manager.Clean()

	keys := &input{display: window}
	window.OnKey(keys.onKey)

	rawModel, err := loadModel(cfg.Model.Path)
	if err != nil {
		return err
	}
	defer rawModel.Delete()

	basicShader, err := loadShader(ctx, cfg.Shader)
	if err != nil {
		return err
	}
	defer basicShader.Delete()

	if cfg.Render.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	}
	if cfg.Render.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	r, g, b, a := cfg.Render.ClearRGBA()
	color := cfg.Render.BaseColourVec()

	var fps metrics.FPSCounter
	fps.Start(glfw.GetTime())

	for !window.ShouldClose() {
		if ctx.Err() != nil {
			slog.Info("interrupted, closing window")
			window.Close()
			break
		}

		gl.ClearColor(r, g, b, a)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		if err := basicShader.Start(); err != nil {
			return err
		}
		basicShader.LoadColor(color)
		basicShader.UpdateTimer()
		rawModel.Render()
		basicShader.Stop()

		// read the back buffer before it is swapped away
		if keys.takeSnapshot() {
			path := fmt.Sprintf("snapshot-%s.png", time.Now().Format("20060102-150405"))
			if err := window.Snapshot(path); err != nil {
				slog.Error("snapshot failed", "err", err)
			}
		}

		window.Update()

		if fps.FrameEnd(glfw.GetTime()) {
			slog.Debug("frame rate", "fps", fps.FPS())
		}
	}
	return nil
}

func loadModel(path string) (*model.RawModel, error) {
	if path == "" {
		return model.LoadFromFloatArray(triangle)
	}
	return model.LoadFromFile(path)
}

func loadShader(ctx context.Context, cfg config.ShaderCfg) (*shader.BasicShader, error) {
	if cfg.Vertex == "" {
		return shader.NewBasicShader(), nil
	}
	s, err := shader.NewBasicShaderFromFiles(cfg.Vertex, cfg.Fragment)
	if err != nil {
		return nil, err
	}
	if cfg.Watch {
		if err := shader.Watch(ctx, s.FileSources()...); err != nil {
			slog.Warn("shader files will not be reloaded", "err", err)
		}
	}
	return s, nil
}
