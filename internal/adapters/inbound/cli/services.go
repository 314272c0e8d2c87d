package cli

import (
	"github.com/sirupsen/logrus"

	"github.com/aiready/aiready/internal/adapters/outbound/config"
	"github.com/aiready/aiready/internal/adapters/outbound/gitinfo"
	"github.com/aiready/aiready/internal/adapters/outbound/parser"
	"github.com/aiready/aiready/internal/adapters/outbound/scanner"
	"github.com/aiready/aiready/internal/application"
	"github.com/aiready/aiready/internal/domain/naming"
)

func newScanService(log logrus.FieldLogger) (*application.ScanService, *parser.Registry) {
	registry := parser.DefaultRegistry()
	return application.NewScanService(registry, scanner.NewReader(0), naming.DefaultConventions(), log), registry
}

func newProjectService(log logrus.FieldLogger) (*application.ProjectService, *parser.Registry) {
	scan, registry := newScanService(log)
	return application.NewProjectService(
		scanner.New(registry.Extensions()),
		config.New(),
		scan,
		gitinfo.New(),
	), registry
}
