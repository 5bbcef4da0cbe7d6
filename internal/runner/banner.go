package runner

import "github.com/projectdiscovery/gologger"

const version = "v0.0.1"

var banner = `
    ____  _
   / __ \(_)___  ____  _  __
  / /_/ / / __ \/ __ '/ |/_/
 / ____/ / / / / /_/ />  <
/_/   /_/_/ /_/\__, /_/|_|
              /____/        ` + version + `
`

// showBanner prints the project banner to the screen.
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tprojectdiscovery.io\n\n")
}
