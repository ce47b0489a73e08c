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

// Package build holds build-time information about the engine binary.
package build

// Version identifies the build. It defaults to "dev" and is meant to be
// overridden at link time with:
//
//	go build -ldflags "-X github.com/kennyfrc/Ethereal/internal/build.Version=$(git describe --tags)"
var Version = "dev"
