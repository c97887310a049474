// Package cli implements the bandex command-line interface.
//
// # Overview
//
// bandex shows the menus of the USP restaurants (bandejões) for today, a
// given weekday or the whole week, highlighting the foods the user likes
// and dislikes.
//
// # Commands
//
// bandex - Show menus (default command):
//
//	bandex                 # meal being served now, today
//	bandex -a              # today's lunch
//	bandex -j -w sexta     # Friday's dinner
//	bandex -e              # both meals, Monday to Friday
//	bandex -aj -w 3        # both meals on Wednesday
//	bandex -e -t json -o menus.json
//
// Without -a or -j the meal follows the time of day: lunch from 06:00 to
// 14:00, dinner from 14:00 to 20:00 and both otherwise.
//
// restaurants - List restaurant ids known to the menu source:
//
//	bandex restaurants
//	bandex restaurants --from 1 --to 20 -t json
//
// config - Inspect the configuration:
//
//	bandex config validate -c ~/bandex.yaml
//	bandex config show -t json
//	bandex config schema > bandex.schema.json
//
// serve - Run the HTTP API:
//
//	bandex serve --port 8080
//
// # Configuration
//
// The configuration file is found in this order:
//  1. the --config/-c flag
//  2. the BANDEX_CONFIG_FILE environment variable
//  3. <user config dir>/bandex/config.yaml
//  4. the built-in defaults (restaurants 8, 7, 9 and 6)
//
// Variables from a .env file in the working directory are loaded on start
// without overriding the environment.
//
// # Output
//
// Text output is colorized unless --no-color is given, NO_COLOR is set or
// the output goes to a file. JSON and YAML carry the same report.
//
// # Caching
//
// Fetched menus are kept in <user cache dir>/bandex/menus.db for up to six
// hours within the same menu week. Use --no-cache to always query the
// source or --cache-file to move the database.
package cli
