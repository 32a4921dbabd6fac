package model

import "time"

// BackupVersion is bumped whenever the snapshot shape changes incompatibly.
const BackupVersion = 1

// Backup is the full JSON snapshot written by /setari/backup and accepted
// by /setari/restore. Users and audit history are deliberately not part of
// it so a restore cannot lock anyone out.
type Backup struct {
	Version    int        `json:"version"`
	ExportedAt time.Time  `json:"exportedAt"`
	Firma      *Company   `json:"firma,omitempty"`
	Parteneri  []Partner  `json:"parteneri"`
	Soferi     []Driver   `json:"soferi"`
	Vehicule   []Vehicle  `json:"vehicule"`
	Curse      []Trip     `json:"curse"`
	Facturi    []Invoice  `json:"facturi"`
	Documente  []Document `json:"documente"`
}
