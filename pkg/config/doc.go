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

/*
Package config manages configuration parsing and validation for custool.

	                  +-------------+
	                  |   Config    |
	                  | (Settings)  |
	                  +------+------+
	                         |
	      +------------------+------------------+
	      |                  |                  |
	+-----+-----+      +-----+-----+      +-----+-----+
	|   YAML    |      |   JSON    |      |    HCL    |
	|  Parser   |      |  Parser   |      |  Parser   |
	+-----------+      +-----------+      +-----------+

🎯 Purpose:
- Loads the optional .custool.{yaml,yml,json,hcl} file
- Fills in defaults for anything left out
- Rejects unknown fields

🔄 Flow:
1. LoadOrDefault looks for an explicit path, then the default file names
2. The registered Parser for the extension decodes the file
3. Validate fills defaults and checks categories

📝 Defaults:
- replace: sheet "Sheet1", columns old_content / new_content
- rename: first sheet, columns old_name / new_name, logs under the user config dir
- loc: "Header Files" (.h), "Source Files" (.cpp), comment prefixes "#", "//", "/*", "*" and the block comment closer
- tools: current folder, .bat .py .exe .ps1 .sh

🔍 Example (HCL):

	replace {
	  sheet  = "Rules"
	  backup = true
	}

	rename {
	  log_dir = "${env.HOME}/rename-logs"
	}

	loc {
	  category "Headers" {
	    extensions = [".h", ".hpp"]
	  }
	  exclude = ["third_party/**", "generated/**"]
	}
*/
package config
