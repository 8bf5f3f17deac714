package jobs

import (
	"log"

	"github.com/mwangi-dev/mentor_hub/services"
)

// RegenerateSlotHorizons keeps every approved mentor's materialized window
// rolling forward. Runs nightly; each mentor regenerates independently so
// one failure does not stall the rest.
func RegenerateSlotHorizons() {
	log.Println("Running job: RegenerateSlotHorizons...")
	services.RegenerateAllHorizons()
}
