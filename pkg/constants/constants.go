package constants

// --- Statuts des commandes (codes identiques à la BD) ---
const (
	CommandeEnAttente          = "EN_ATTENTE"
	CommandeServie             = "SERVIE"
	CommandeAnnuleeClient      = "ANNULEE_CLIENT"
	CommandeAnnuleeInterimaire = "ANNULEE_INTERIMAIRE"
)

// Statuts finaux : plus aucune transition possible.
var FinalCommandeStatuses = []string{
	CommandeServie,
	CommandeAnnuleeClient,
	CommandeAnnuleeInterimaire,
}

func IsFinalCommandeStatus(code string) bool {
	for _, s := range FinalCommandeStatuses {
		if s == code {
			return true
		}
	}
	return false
}

func IsCancelledCommandeStatus(code string) bool {
	return code == CommandeAnnuleeClient || code == CommandeAnnuleeInterimaire
}

// Statuts qui bloquent la suppression d'un intérimaire ou d'un client.
var BlockingCommandeStatuses = []string{
	CommandeEnAttente,
	CommandeServie,
}

// --- Disponibilité des intérimaires ---
const (
	DisponibiliteDisponible = "DISPONIBLE"
	DisponibiliteOccupe     = "OCCUPE"
	DisponibiliteEnPoste    = "EN_POSTE"
)

var Disponibilites = []string{
	DisponibiliteDisponible,
	DisponibiliteOccupe,
	DisponibiliteEnPoste,
}

func IsValidDisponibilite(code string) bool {
	for _, d := range Disponibilites {
		if d == code {
			return true
		}
	}
	return false
}
