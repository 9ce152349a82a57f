package orchestrator

// Step names used in progress events and StepError
const (
	StepProject  = "project"
	StepScheme   = "scheme"
	StepList     = "list"
	StepSelect   = "select"
	StepBoot     = "boot"
	StepPackager = "packager"
	StepBuild    = "build"
	StepInstall  = "install"
	StepBundleID = "bundle_id"
	StepLaunch   = "launch"
)

// StepError records which step of the run failed
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepErr(step string, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Step: step, Err: err}
}
