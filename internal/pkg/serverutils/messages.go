package serverutils

const (
	ReasonSessionNotFound = "session_not_found"
	ReasonInvalidPhase    = "invalid_phase"
	ReasonNoItems         = "no_items"
	ReasonInvalidItem     = "invalid_item"
	ReasonInvalidTier     = "invalid_tier"
	ReasonSessionBusy     = "session_busy"
	ReasonInvalidRequest  = "invalid_request"
	ReasonUnauthorized    = "unauthorized"
	ReasonNotFound        = "not_found"
	ReasonInternal        = "internal"
	ReasonNoCandidates    = "no_candidates"
)

var supportedLanguages = []string{"en", "ru"}

var messages = map[string]map[string]string{
	"en": {
		ReasonSessionNotFound: "Ranking session not found. Start a new one.",
		ReasonInvalidPhase:    "This answer no longer matches the session. Reload it to continue.",
		ReasonNoItems:         "You have no rated games yet, there is nothing to rank.",
		ReasonInvalidItem:     "This game is not part of the current round.",
		ReasonInvalidTier:     "Unknown rating choice.",
		ReasonSessionBusy:     "The session is busy with another answer. Try again.",
		ReasonInvalidRequest:  "The request is invalid.",
		ReasonUnauthorized:    "Authorization required.",
		ReasonNotFound:        "Not found.",
		ReasonInternal:        "Something went wrong. Try again later.",
		ReasonNoCandidates:    "No game was rated good or excellent, so there is nothing to rank. Start a new session.",
	},
	"ru": {
		ReasonSessionNotFound: "Сессия ранжирования не найдена. Начните новую.",
		ReasonInvalidPhase:    "Ответ не соответствует текущему этапу. Обновите сессию.",
		ReasonNoItems:         "Для вас нет ни одной оцененной игры.",
		ReasonInvalidItem:     "Эта игра не участвует в текущем этапе.",
		ReasonInvalidTier:     "Неизвестный вариант оценки.",
		ReasonSessionBusy:     "Сессия занята другим ответом. Попробуйте ещё раз.",
		ReasonInvalidRequest:  "Некорректный запрос.",
		ReasonUnauthorized:    "Требуется авторизация.",
		ReasonNotFound:        "Не найдено.",
		ReasonInternal:        "Что-то пошло не так. Попробуйте позже.",
		ReasonNoCandidates:    "Ни одна игра не получила оценку «хорошо» или «отлично». Начните новую сессию.",
	},
}

// Localize returns the message for reason in lang, falling back to English.
func Localize(lang, reason string) string {
	if m, ok := messages[lang]; ok {
		if msg, ok := m[reason]; ok {
			return msg
		}
	}
	return messages["en"][reason]
}
