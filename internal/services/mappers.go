package services

import (
	"time"

	"interim-system/internal/dto"
	"interim-system/internal/entities"
)

const dateLayout = "2006-01-02"

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func agenceToDTO(a *entities.Agence) *dto.AgenceDTO {
	return &dto.AgenceDTO{
		ID:        a.ID,
		Nom:       a.Nom,
		Code:      a.Code,
		Telephone: a.Telephone,
		Email:     a.Email,
		CreatedAt: formatTimestamp(a.CreatedAt),
	}
}

func qualificationToDTO(q *entities.Qualification) *dto.QualificationDTO {
	return &dto.QualificationDTO{
		ID:        q.ID,
		Nom:       q.Nom,
		Acronyme:  q.Acronyme,
		CreatedAt: formatTimestamp(q.CreatedAt),
	}
}

func shortAgenceToDTO(a *entities.ShortAgence) *dto.ShortAgenceDTO {
	if a == nil {
		return nil
	}
	return &dto.ShortAgenceDTO{ID: a.ID, Nom: a.Nom}
}

func shortQualificationToDTO(q *entities.ShortQualification) *dto.ShortQualificationDTO {
	if q == nil {
		return nil
	}
	return &dto.ShortQualificationDTO{ID: q.ID, Nom: q.Nom}
}

func shortClientToDTO(c *entities.ShortClient) *dto.ShortClientDTO {
	if c == nil {
		return nil
	}
	return &dto.ShortClientDTO{ID: c.ID, NomEtablissement: c.NomEtablissement}
}

func shortInterimaireToDTO(i *entities.ShortInterimaire) *dto.ShortInterimaireDTO {
	if i == nil {
		return nil
	}
	return &dto.ShortInterimaireDTO{ID: i.ID, Nom: i.Nom, Prenom: i.Prenom}
}

func interimaireToDTO(i *entities.Interimaire) *dto.InterimaireDTO {
	return &dto.InterimaireDTO{
		ID:            i.ID,
		Nom:           i.Nom,
		Prenom:        i.Prenom,
		Adresse:       i.Adresse,
		Vehicule:      i.Vehicule,
		Disponibilite: i.Disponibilite,
		Qualification: shortQualificationToDTO(i.Qualification),
		Agence:        shortAgenceToDTO(i.Agence),
		CreatedAt:     formatTimestamp(i.CreatedAt),
	}
}

func clientToDTO(c *entities.Client) *dto.ClientDTO {
	return &dto.ClientDTO{
		ID:               c.ID,
		NomEtablissement: c.NomEtablissement,
		Service:          c.Service,
		Adresse:          c.Adresse,
		CodePostal:       c.CodePostal,
		Ville:            c.Ville,
		Agence:           shortAgenceToDTO(c.Agence),
		CreatedAt:        formatTimestamp(c.CreatedAt),
	}
}

func commandeToDTO(cm *entities.Commande) *dto.CommandeDTO {
	return &dto.CommandeDTO{
		ID:              cm.ID,
		Status:          cm.Status,
		DateDebut:       cm.DateDebut.Format(dateLayout),
		DateFin:         cm.DateFin.Format(dateLayout),
		HoraireDebut:    cm.HoraireDebut,
		HoraireFin:      cm.HoraireFin,
		MotifAnnulation: cm.MotifAnnulation,
		Notes:           cm.Notes,
		Client:          shortClientToDTO(cm.Client),
		Qualification:   shortQualificationToDTO(cm.Qualification),
		Agence:          shortAgenceToDTO(cm.Agence),
		Interimaire:     shortInterimaireToDTO(cm.Interimaire),
		ClientID:        cm.ClientID,
		QualificationID: cm.QualificationID,
		AgenceID:        cm.AgenceID,
		InterimaireID:   cm.InterimaireID,
		CreatedAt:       formatTimestamp(cm.CreatedAt),
	}
}

func utilisateurToDTO(u *entities.Utilisateur) *dto.UtilisateurDTO {
	return &dto.UtilisateurDTO{
		ID:        u.ID,
		Nom:       u.Nom,
		Prenom:    u.Prenom,
		Email:     u.Email,
		Telephone: u.Telephone,
		Agence:    shortAgenceToDTO(u.Agence),
		CreatedAt: formatTimestamp(u.CreatedAt),
	}
}
