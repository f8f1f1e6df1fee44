// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

// defaultProtectedModules are vendor modules bundled under the original
// namespace. The main substitution absorbs them into the new namespace, and
// the final restore rule moves them back; renaming any of these breaks the
// recompiled application.
var defaultProtectedModules = []string{
	"aborthooks",
	"adscreation",
	"anr",
	"audioRecording",
	"breakpad",
	"calling",
	"fieldstats",
	"filter",
	"infra",
	"jid",
	"media",
	"messagetranslation",
	"nativelibloader",
	"protocol",
	"pytorch",
	"stickers",
	"superpack",
	"unity",
	"util",
	"voipcalling",
	"wamsys",
	"executorch",
	"gwpasan",
	"voicetranscription",
	"AppShell",
	"GifHelper",
	"Mp4Ops",
	"NativeMediaHandler",
	"SmbAppShell",
	"SqliteShell",
	"StickyHeadersRecyclerView",
	"VideoFrameConverter",
	"ohai",
	"WaOhaiClient",
	"productinfra",
	"music",
	"api",
	"MusicApi",
}

// 📦 DefaultProtectedModules returns a fresh copy of the built-in
// protected-module allow-list, so callers can never mutate the shared one.
func DefaultProtectedModules() []string {
	out := make([]string, len(defaultProtectedModules))
	copy(out, defaultProtectedModules)
	return out
}
