// Package autoload initializes the global logger from the LOGGER_* variables
// as a side effect of being imported.
package autoload

import (
	configx "github.com/charla-ai/charla/pkg/config"
	logx "github.com/charla-ai/charla/pkg/logger"
)

func init() {
	conf, err := configx.New[logx.Config]("LOGGER")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*conf)
}
