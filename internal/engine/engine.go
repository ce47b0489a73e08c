// Copyright © 2022 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package engine wires together the uci command schema, the engine
// context, and the search package into a single client ready to be run
// against a GUI over stdin/stdout.
package engine

import (
	"github.com/kennyfrc/Ethereal/internal/engine/cmd"
	"github.com/kennyfrc/Ethereal/internal/engine/context"
	"github.com/kennyfrc/Ethereal/internal/engine/options"
	"github.com/kennyfrc/Ethereal/pkg/search"
	"github.com/kennyfrc/Ethereal/pkg/uci"
	"github.com/kennyfrc/Ethereal/pkg/uci/option"
)

// defaultHashMB is the transposition table size used before the GUI sets
// the Hash option, or if it never does.
const defaultHashMB = 16

// NewClient builds a new uci.Client with all of the engine's commands
// and options registered, ready to be Run.
func NewClient() uci.Client {
	return NewClientWithHash(defaultHashMB)
}

// NewClientWithHash is NewClient but with the initial transposition
// table size overridden, for callers (e.g. a loaded config file) that
// know the desired hash size before any UCI setoption is received.
func NewClientWithHash(hashMB int) uci.Client {
	client := uci.NewClient()

	engine := &context.Engine{
		Client: client,
	}
	engine.Search = search.NewContext(func(r search.Report) {
		client.Println(r)
	}, hashMB)

	engine.OptionSchema = newOptionSchema(engine)

	client.AddCommand(cmd.NewUci(engine))
	client.AddCommand(cmd.NewUciNewGame(engine))
	client.AddCommand(cmd.NewPosition(engine))
	client.AddCommand(cmd.NewGo(engine))
	client.AddCommand(cmd.NewPonderHit(engine))
	client.AddCommand(cmd.NewStop(engine))
	client.AddCommand(cmd.NewSetOption(engine))
	client.AddCommand(cmd.NewD(engine))

	if err := engine.OptionSchema.SetDefaults(); err != nil {
		panic(err)
	}

	// SetDefaults applied the Hash option's own default size, so restore
	// the requested one
	engine.Options.Hash = hashMB
	engine.Search.ResizeTT(hashMB)

	return client
}

// newOptionSchema builds the set of UCI options the engine exposes to
// the GUI.
func newOptionSchema(engine *context.Engine) option.Schema {
	schema := option.NewSchema()
	schema.AddOption("Hash", options.NewHash(engine))
	schema.AddOption("Threads", options.NewThreads(engine))
	schema.AddOption("Ponder", options.NewPonder(engine))
	return schema
}
