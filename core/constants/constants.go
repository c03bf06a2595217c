package constants

import "time"

const (
	DefaultRequestTimeout  = 5 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	GenerationTimeout      = 30 * time.Second
)

// Context keys and headers
const (
	ContextCurrentUser = "current_user"
	HeaderUserID       = "X-User-ID"
)

// Sentinel filter value meaning "every activity type".
const AllTypes = "all"

const DefaultHomeFeedSize = 3

// User facing messages. The application speaks French only.
const (
	MsgRequiredFields      = "Veuillez remplir les champs obligatoires."
	MsgGenerationFailed    = "Erreur lors de la génération avec l'IA. Veuillez réessayer."
	MsgUserNotFound        = "Aucun utilisateur trouvé avec cet email."
	MsgSignupNotAvailable  = "La création de compte n'est pas implémentée dans cette démo. Veuillez utiliser un des emails existants."
	MsgActivityNotFound    = "Activité non trouvée"
	MsgActivityFull        = "Complet"
	MsgActivityPast        = "Cette sortie est terminée."
	MsgAlreadyRegistered   = "Vous êtes déjà inscrit à cette sortie."
	MsgOrganizerCannotJoin = "L'organisateur ne peut pas s'inscrire à sa propre sortie."
	MsgCommentNotAllowed   = "Seuls les participants peuvent commenter une sortie terminée."
	MsgCommentInvalid      = "Veuillez saisir un commentaire et une note."
	MsgNotOrganizer        = "Seul l'organisateur peut traiter les demandes."
	MsgAlreadyDecided      = "Cette demande a déjà été traitée."
	MsgLoginRequired       = "Veuillez vous connecter."
)

// Status labels shown next to an activity.
const (
	LabelUpcoming = "À venir"
	LabelFinished = "Terminée"
)

// Notification titles and message formats.
const (
	NotifJoinRequestTitle   = "Nouvelle demande de participation"
	NotifJoinRequestMessage = "%s souhaite rejoindre « %s »."
	NotifAcceptedTitle      = "Demande acceptée"
	NotifAcceptedMessage    = "Votre participation à « %s » est confirmée."
	NotifRejectedTitle      = "Demande refusée"
	NotifRejectedMessage    = "Votre demande pour « %s » n'a pas été retenue."
	NotifCommentTitle       = "Nouvel avis"
	NotifCommentMessage     = "%s a laissé un avis (%d/5) sur « %s »."
)
