package histstore

import (
	"fmt"

	"github.com/devpulse/devpulse/schema"
)

// PrintStatus prints store status to stdout.
func PrintStatus(status schema.StoreStatus) {
	fmt.Printf("Backend: %s\n", status.Backend)
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Technologies Tracked: %d\n", status.Technologies)
	if status.OldestDate != "" {
		fmt.Printf("Oldest Snapshot: %s\n", status.OldestDate)
		fmt.Printf("Newest Snapshot: %s\n", status.NewestDate)
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}
