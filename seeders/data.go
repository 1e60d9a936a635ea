package seeders

type qualificationSeed struct {
	Nom      string
	Acronyme string
}

var qualificationsData = []qualificationSeed{
	{Nom: "INFIRMIER DIPLOME D'ETAT", Acronyme: "IDE"},
	{Nom: "AIDE-SOIGNANT", Acronyme: "AS"},
	{Nom: "AGENT DE SERVICE HOSPITALIER", Acronyme: "ASH"},
	{Nom: "AUXILIAIRE DE PUERICULTURE", Acronyme: "AP"},
	{Nom: "ACCOMPAGNANT EDUCATIF ET SOCIAL", Acronyme: "AES"},
	{Nom: "MONITEUR EDUCATEUR", Acronyme: "ME"},
	{Nom: "EDUCATEUR SPECIALISE", Acronyme: "ES"},
	{Nom: "CUISINIER", Acronyme: "CUIS"},
}

type agenceSeed struct {
	Nom       string
	Code      string
	Telephone string
	Email     string
}

var agencesData = []agenceSeed{
	{Nom: "AGENCE NORD", Code: "NRD1", Telephone: "0320455667", Email: "nord@interim-system.fr"},
	{Nom: "AGENCE SUD", Code: "SUD1", Telephone: "0491786554", Email: "sud@interim-system.fr"},
	{Nom: "AGENCE OUEST", Code: "OUE1", Telephone: "0240112233", Email: "ouest@interim-system.fr"},
}
