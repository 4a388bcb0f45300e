/*
Copyright © 2026 kamecha

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/kamecha/denops-translate.vim/internal/authkey"
	"github.com/kamecha/denops-translate.vim/internal/config"
	"github.com/kamecha/denops-translate.vim/internal/dispatcher"
	"github.com/kamecha/denops-translate.vim/internal/option"
	"github.com/kamecha/denops-translate.vim/internal/store"
	"github.com/kamecha/denops-translate.vim/internal/translator"
)

// buildService constructs the generic translation backend named in the config.
func buildService(c *config.Config) (translator.Translator, error) {
	svcCfg := translator.ServiceConfig{
		Credentials: c.GoogleCredentials,
		ProjectID:   c.GoogleProject,
		Email:       c.MyMemoryEmail,
		Timeout:     c.Timeout,
	}

	switch c.Service {
	case config.ServiceWeb:
		return translator.NewWebService(svcCfg), nil
	case config.ServiceGoogle:
		return translator.NewGoogleService(svcCfg), nil
	case config.ServiceMyMemory:
		return translator.NewMyMemoryService(svcCfg), nil
	default:
		return nil, fmt.Errorf("unknown service: %s", c.Service)
	}
}

// buildDispatcher wires the backends, the auth key resolver and, when
// configured, the history store. The returned close func releases the store.
func buildDispatcher(c *config.Config, lines option.LineSource, vars option.VarSource) (*dispatcher.Dispatcher, func() error, error) {
	keyPath, err := c.AuthKeyPath()
	if err != nil {
		return nil, nil, err
	}

	builder := option.NewBuilder(lines, vars, authkey.NewResolver(keyPath))
	builder.Defaults = c.Defaults()

	generic, err := buildService(c)
	if err != nil {
		return nil, nil, err
	}

	opts := []dispatcher.Option{dispatcher.WithLogger(logger)}
	closeFn := func() error { return nil }

	if c.HistoryDB != "" {
		db, err := store.New(c.HistoryDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open history database: %w", err)
		}
		opts = append(opts, dispatcher.WithHistory(db))
		closeFn = db.Close
	}

	deeplSvc := translator.NewDeepLService(translator.ServiceConfig{Timeout: c.Timeout})
	return dispatcher.New(builder, deeplSvc, generic, opts...), closeFn, nil
}
