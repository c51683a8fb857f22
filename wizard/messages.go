package wizard

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/anyang-health/triage-app/schema"
)

// Every user-visible string goes through the localizer; the English
// defaults below are the fallback catalog, the shipped UI language is
// Korean (i18n/ko.yaml).
var (
	msgSplashWelcome     = &i18n.Message{ID: "splash_welcome", Other: "Hello, this is Apeuji-anyang."}
	msgSplashLoginNeeded = &i18n.Message{ID: "splash_login_needed", Other: "Please log in to use the service."}
	msgSessionExpired    = &i18n.Message{ID: "session_expired", Other: "Your session has expired. Please log in again."}

	msgLoginPromptID       = &i18n.Message{ID: "login_prompt_id", Other: "User ID:"}
	msgLoginPromptPassword = &i18n.Message{ID: "login_prompt_password", Other: "Password:"}
	msgLoginMenu           = &i18n.Message{ID: "login_menu", Other: "Do you have an account?"}
	msgLoginOptionLogin    = &i18n.Message{ID: "login_option_login", Other: "Log in"}
	msgLoginOptionRegister = &i18n.Message{ID: "login_option_register", Other: "Sign up"}
	msgLoginMissingFields  = &i18n.Message{ID: "login_missing_fields", Other: "Please enter both user ID and password."}
	msgLoginInvalid        = &i18n.Message{ID: "login_invalid_credentials", Other: "Invalid user ID or password."}

	msgErrNetwork      = &i18n.Message{ID: "error_network", Other: "Cannot reach the server. Check your connection."}
	msgErrServer       = &i18n.Message{ID: "error_server", Other: "Something went wrong. Please try again."}
	msgErrAuthRequired = &i18n.Message{ID: "error_auth_required", Other: "You need to log in again."}

	msgRegisterPromptNickname = &i18n.Message{ID: "register_prompt_nickname", Other: "Nickname:"}
	msgRegisterPromptConfirm  = &i18n.Message{ID: "register_prompt_password_confirm", Other: "Confirm password:"}
	msgRegisterIDTaken        = &i18n.Message{ID: "register_id_taken", Other: "This user ID is already taken."}
	msgRegisterMismatch       = &i18n.Message{ID: "register_password_mismatch", Other: "The passwords do not match."}
	msgRegisterMissingFields  = &i18n.Message{ID: "register_missing_fields", Other: "Please fill in every field."}
	msgRegisterComplete       = &i18n.Message{ID: "register_complete", Other: "Registration complete. Please log in."}

	msgHomeTitle           = &i18n.Message{ID: "home_title", Other: "What can I do for you?"}
	msgHomeOptionTriage    = &i18n.Message{ID: "home_option_triage", Other: "Find a hospital for my symptoms"}
	msgHomeOptionEmergency = &i18n.Message{ID: "home_option_emergency", Other: "Emergency report"}
	msgHomeOptionLogout    = &i18n.Message{ID: "home_option_logout", Other: "Log out"}
	msgHomeOptionQuit      = &i18n.Message{ID: "home_option_quit", Other: "Quit"}

	msgBodySelectTitle = &i18n.Message{ID: "body_select_title", Other: "Which part of your body hurts?"}
	msgRegionHead      = &i18n.Message{ID: "region_head", Other: "Head"}
	msgRegionTrunk     = &i18n.Message{ID: "region_trunk", Other: "Trunk"}
	msgRegionHand      = &i18n.Message{ID: "region_hand", Other: "Hand"}
	msgRegionFoot      = &i18n.Message{ID: "region_foot", Other: "Foot"}

	msgRegionDetailInfo     = &i18n.Message{ID: "region_detail_info", Other: "Selected body part: {{.Region}}"}
	msgRegionDetailContinue = &i18n.Message{ID: "region_detail_continue", Other: "Continue to describe your symptoms?"}

	msgChatGreeting = &i18n.Message{ID: "chat_greeting", Other: "Hello, this is the Apeuji-anyang chatbot.\nTell me your symptoms and I will recommend nearby hospitals."}
	msgChatPrompt   = &i18n.Message{ID: "chat_prompt", Other: "Describe your symptom:"}

	msgLocationDenied      = &i18n.Message{ID: "location_permission_denied", Other: "Location permission was denied."}
	msgLocationUnavailable = &i18n.Message{ID: "location_unavailable", Other: "Cannot determine your current position."}
	msgLocationTimeout     = &i18n.Message{ID: "location_timeout", Other: "Locating you took too long. Please try again."}

	msgLoadingSearching = &i18n.Message{ID: "loading_searching", Other: "Looking for hospitals. Please wait."}

	msgFinderTitle           = &i18n.Message{ID: "finder_title", Other: "Hospital finder"}
	msgFinderEmpty           = &i18n.Message{ID: "finder_empty", Other: "No hospitals to recommend for now."}
	msgFinderChoose          = &i18n.Message{ID: "finder_choose", Other: "Select a hospital for details."}
	msgFinderOptionBack      = &i18n.Message{ID: "finder_option_back", Other: "Back"}
	msgFinderDistanceUnknown = &i18n.Message{ID: "finder_distance_unknown", Other: "distance unknown"}

	msgDetailLoading = &i18n.Message{ID: "detail_loading", Other: "Loading hospital details..."}
	msgDetailFailed  = &i18n.Message{ID: "detail_failed", Other: "Failed to load hospital details."}
	msgDetailBack    = &i18n.Message{ID: "detail_back", Other: "Go back"}

	msgEmergencyConfirm     = &i18n.Message{ID: "emergency_confirm", Other: "Is this an emergency? Reporting will automatically notify 119."}
	msgEmergencyDispatching = &i18n.Message{ID: "emergency_dispatching", Other: "Filing your report..."}
	msgEmergencyConnected   = &i18n.Message{ID: "emergency_connected", Other: "Connecting you to 119 shortly. Receipt: {{.Receipt}}"}
	msgEmergencyDone        = &i18n.Message{ID: "emergency_done", Other: "Done"}
)

func (a *App) t(msg *i18n.Message, data map[string]interface{}) string {
	out, err := a.localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: msg,
		TemplateData:   data,
	})
	if nil != err {
		return msg.Other
	}
	return out
}

func regionMessage(r schema.BodyRegion) *i18n.Message {
	switch r {
	case schema.RegionHead:
		return msgRegionHead
	case schema.RegionTrunk:
		return msgRegionTrunk
	case schema.RegionHand:
		return msgRegionHand
	default:
		return msgRegionFoot
	}
}
