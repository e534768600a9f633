package loop

// hudHelp is appended to the status line.
const hudHelp = "wasd/arrows move, q quits"
