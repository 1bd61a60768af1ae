package constants

// Review statuses the homework API is allowed to report.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

// GetHomeworkVerdicts maps each known status to the sentence forwarded to the chat.
func GetHomeworkVerdicts() map[string]string {
	return map[string]string{
		StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
		StatusReviewing: "Работа взята на проверку ревьюером.",
		StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
	}
}
