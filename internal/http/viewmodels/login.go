package viewmodels

type LoginViewData struct {
	CSRFToken    string
	Email        string
	Next         string
	RememberMe   bool
	ErrorMessage string
	Toast        *ToastViewData
}
