package viewmodels

type LayoutData struct {
	Title      string
	CSRFToken  string
	UserEmail  string
	RepoURL    string
	ActivePath string
	Toast      *ToastViewData
}

type ToastViewData struct {
	Message     string
	Destructive bool
}
