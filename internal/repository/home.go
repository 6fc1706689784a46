package repository

import "os"

var homeDir = os.UserHomeDir
