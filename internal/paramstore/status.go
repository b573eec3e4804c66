package paramstore

import (
	"fmt"

	"github.com/talentmap/talentmap/schema"
)

// PrintStoreStatus prints parameter store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Parameter Versions: %d\n", status.ParamVersions)
	fmt.Printf("Norm Table Versions: %d\n", status.NormVersions)
	if status.ParamVersions > 0 {
		fmt.Printf("Last Published: %s\n", status.LastPublished.Format("2006-01-02 15:04:05"))
	}
}
