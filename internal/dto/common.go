package dto

// StatsDTO alimente les cartes du tableau de bord. Les compteurs sont
// dérivés des caches de collection, pas de la BD.
type StatsDTO struct {
	Agences            int    `json:"agences"`
	Qualifications     int    `json:"qualifications"`
	Interimaires       int    `json:"interimaires"`
	Clients            int    `json:"clients"`
	Commandes          int    `json:"commandes"`
	CommandesEnAttente int    `json:"commandes_en_attente"`
	CommandesServies   int    `json:"commandes_servies"`
	CommandesAnnulees  int    `json:"commandes_annulees"`
	CacheRevision      uint64 `json:"cache_revision"`
}
