package app

// MinPlayersToStartGame defines the minimum number of seated players required to start a game.
const MinPlayersToStartGame = 3

// MaxPlayersPerGame caps lobby size.
const MaxPlayersPerGame = 4

// VictoryPointsToWin ends the game once any private total reaches it.
const VictoryPointsToWin = 10
