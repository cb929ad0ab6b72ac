// Package autoload configures the global logger from LOG_* variables on import.
// It reads ./.env and the process environment only; flags are not parsed
// during init.
package autoload

import (
	configx "github.com/tanpawarit/chative-retail-orchestrator/pkg/config"
	logx "github.com/tanpawarit/chative-retail-orchestrator/pkg/logger"
)

func init() {
	conf, err := configx.Load[logx.Config]("LOG", "")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*conf)
}
