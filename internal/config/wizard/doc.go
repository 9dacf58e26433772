// Package wizard implements the interactive questionnaire behind the init
// command. It collects the handful of values a fresh deployment needs and
// writes a commented s3cure.yaml.
package wizard
