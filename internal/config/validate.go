package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEditor(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEditor() error {
	if c.Editor.DefaultScaleX <= 0 {
		return errors.New("editor.default_scale_x must be positive")
	}
	if c.Editor.DefaultScaleY <= 0 {
		return errors.New("editor.default_scale_y must be positive")
	}
	return nil
}

func (c *Config) validateDisplay() error {
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("display.color must be one of auto, always, never (got %q)", c.Display.Color)
	}
	switch c.Display.TableStyle {
	case "rounded", "light", "ascii":
	default:
		return fmt.Errorf("display.table_style must be one of rounded, light, ascii (got %q)", c.Display.TableStyle)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	return nil
}
