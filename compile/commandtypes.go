package compile

import "github.com/kichikuou-go/sys35c/internal/lexer"

// Command, CMD2, and CMD3 re-export the lexer's command-token vocabulary so
// the rest of this package (notably commandsig.go's giant dispatch table)
// can spell commands without an explicit lexer. prefix on every entry.
type Command = lexer.Command

func CMD2(a, b byte) Command { return lexer.CMD2(a, b) }
func CMD3(a, b, c byte) Command {
	return lexer.CMD3(a, b, c)
}

const (
	CommandIF       = lexer.CommandIF
	CommandCONST    = lexer.CommandCONST
	CommandPRAGMA   = lexer.CommandPRAGMA
	CommandDLLCall  = lexer.CommandDLLCall
	CommandAinMsg   = lexer.CommandAinMsg

	CommandInc                   = lexer.CommandInc
	CommandDec                   = lexer.CommandDec
	CommandWavLoad                = lexer.CommandWavLoad
	CommandWavPlay                = lexer.CommandWavPlay
	CommandWavStop                = lexer.CommandWavStop
	CommandWavUnload              = lexer.CommandWavUnload
	CommandWavIsPlay              = lexer.CommandWavIsPlay
	CommandWavFade                = lexer.CommandWavFade
	CommandWavIsFade              = lexer.CommandWavIsFade
	CommandWavStopFade            = lexer.CommandWavStopFade
	CommandTrace                  = lexer.CommandTrace
	CommandWav3DSetPos            = lexer.CommandWav3DSetPos
	CommandWav3DCommit            = lexer.CommandWav3DCommit
	CommandWav3DGetPos            = lexer.CommandWav3DGetPos
	CommandWav3DSetPosL           = lexer.CommandWav3DSetPosL
	CommandWav3DGetPosL           = lexer.CommandWav3DGetPosL
	CommandWav3DFadePos           = lexer.CommandWav3DFadePos
	CommandWav3DIsFadePos         = lexer.CommandWav3DIsFadePos
	CommandWav3DStopFadePos       = lexer.CommandWav3DStopFadePos
	CommandWav3DFadePosL          = lexer.CommandWav3DFadePosL
	CommandWav3DIsFadePosL        = lexer.CommandWav3DIsFadePosL
	CommandWav3DStopFadePosL      = lexer.CommandWav3DStopFadePosL
	CommandSndPlay                = lexer.CommandSndPlay
	CommandSndStop                = lexer.CommandSndStop
	CommandSndIsPlay              = lexer.CommandSndIsPlay
	CommandMsg                    = lexer.CommandMsg
	CommandWavWaitTime            = lexer.CommandWavWaitTime
	CommandWavGetPlayPos          = lexer.CommandWavGetPlayPos
	CommandWavWaitEnd             = lexer.CommandWavWaitEnd
	CommandWavGetWaveTime         = lexer.CommandWavGetWaveTime
	CommandMenuSetCbkSelect       = lexer.CommandMenuSetCbkSelect
	CommandMenuSetCbkCancel       = lexer.CommandMenuSetCbkCancel
	CommandMenuClearCbkSelect     = lexer.CommandMenuClearCbkSelect
	CommandMenuClearCbkCancel     = lexer.CommandMenuClearCbkCancel
	CommandWav3DSetMode           = lexer.CommandWav3DSetMode
	CommandGrCopyStretch          = lexer.CommandGrCopyStretch
	CommandGrFilterRect           = lexer.CommandGrFilterRect
	CommandIptClearWheelCount     = lexer.CommandIptClearWheelCount
	CommandIptGetWheelCount       = lexer.CommandIptGetWheelCount
	CommandMenuGetFontSize        = lexer.CommandMenuGetFontSize
	CommandMsgGetFontSize         = lexer.CommandMsgGetFontSize
	CommandStrGetCharType         = lexer.CommandStrGetCharType
	CommandStrGetLengthASCII      = lexer.CommandStrGetLengthASCII
	CommandSysWinMsgLock          = lexer.CommandSysWinMsgLock
	CommandSysWinMsgUnlock        = lexer.CommandSysWinMsgUnlock
	CommandAryCmpCount            = lexer.CommandAryCmpCount
	CommandAryCmpTrans            = lexer.CommandAryCmpTrans
	CommandGrBlendColorRect       = lexer.CommandGrBlendColorRect
	CommandGrDrawFillCircle       = lexer.CommandGrDrawFillCircle
	CommandMenuSetCbkInit         = lexer.CommandMenuSetCbkInit
	CommandMenuClearCbkInit       = lexer.CommandMenuClearCbkInit
	CommandMenu                   = lexer.CommandMenu
	CommandSysOpenShell           = lexer.CommandSysOpenShell
	CommandSysAddWebMenu          = lexer.CommandSysAddWebMenu
	CommandIptSetMoveCursorTime   = lexer.CommandIptSetMoveCursorTime
	CommandIptGetMoveCursorTime   = lexer.CommandIptGetMoveCursorTime
	CommandGrBlt                  = lexer.CommandGrBlt
	CommandSysGetOSName           = lexer.CommandSysGetOSName
	CommandPatchEC                = lexer.CommandPatchEC
	CommandMathSetClipWindow      = lexer.CommandMathSetClipWindow
	CommandMathClip               = lexer.CommandMathClip
	CommandStrInputDlg            = lexer.CommandStrInputDlg
	CommandStrCheckASCII          = lexer.CommandStrCheckASCII
	CommandStrCheckSJIS           = lexer.CommandStrCheckSJIS
	CommandStrMessageBox          = lexer.CommandStrMessageBox
	CommandStrMessageBoxStr       = lexer.CommandStrMessageBoxStr
	CommandGrCopyUseAMapUseA      = lexer.CommandGrCopyUseAMapUseA
	CommandGrSetCEParam           = lexer.CommandGrSetCEParam
	CommandGrEffectMoveView       = lexer.CommandGrEffectMoveView
	CommandCgSetCacheSize         = lexer.CommandCgSetCacheSize
	CommandGaijiSet               = lexer.CommandGaijiSet
	CommandGaijiClearAll          = lexer.CommandGaijiClearAll
	CommandMenuGetLatestSelect    = lexer.CommandMenuGetLatestSelect
	CommandLnkIsLink              = lexer.CommandLnkIsLink
	CommandLnkIsData              = lexer.CommandLnkIsData
	CommandFncSetTable            = lexer.CommandFncSetTable
	CommandFncSetTableFromStr     = lexer.CommandFncSetTableFromStr
	CommandFncClearTable          = lexer.CommandFncClearTable
	CommandFncCall                = lexer.CommandFncCall
	CommandFncSetReturnCode       = lexer.CommandFncSetReturnCode
	CommandFncGetReturnCode       = lexer.CommandFncGetReturnCode
	CommandMsgSetOutputFlag       = lexer.CommandMsgSetOutputFlag
	CommandSaveDeleteFile         = lexer.CommandSaveDeleteFile
	CommandWav3DSetUseFlag        = lexer.CommandWav3DSetUseFlag
	CommandWavFadeVolume          = lexer.CommandWavFadeVolume
	CommandPatchEMEN              = lexer.CommandPatchEMEN
	CommandWmenuEnableMsgSkip     = lexer.CommandWmenuEnableMsgSkip
	CommandWinGetFlipFlag         = lexer.CommandWinGetFlipFlag
	CommandCdGetMaxTrack          = lexer.CommandCdGetMaxTrack
	CommandDlgErrorOkCancel       = lexer.CommandDlgErrorOkCancel
	CommandMenuReduce             = lexer.CommandMenuReduce
	CommandMenuGetNumof           = lexer.CommandMenuGetNumof
	CommandMenuGetText            = lexer.CommandMenuGetText
	CommandMenuGoto               = lexer.CommandMenuGoto
	CommandMenuReturnGoto         = lexer.CommandMenuReturnGoto
	CommandMenuFreeShelterDIB     = lexer.CommandMenuFreeShelterDIB
	CommandMsgFreeShelterDIB      = lexer.CommandMsgFreeShelterDIB
	CommandDataSetPointer         = lexer.CommandDataSetPointer
	CommandDataGetWORD            = lexer.CommandDataGetWORD
	CommandDataGetString          = lexer.CommandDataGetString
	CommandDataSkipWORD           = lexer.CommandDataSkipWORD
	CommandDataSkipString         = lexer.CommandDataSkipString
	CommandVarGetNumof            = lexer.CommandVarGetNumof
	CommandPatchG0                = lexer.CommandPatchG0
	CommandRegReadString          = lexer.CommandRegReadString
	CommandFileCheckExist         = lexer.CommandFileCheckExist
	CommandTimeCheckCurDate       = lexer.CommandTimeCheckCurDate
	CommandDlgManualProtect       = lexer.CommandDlgManualProtect
	CommandFileCheckDVD           = lexer.CommandFileCheckDVD
	CommandSysReset               = lexer.CommandSysReset

	CommandTOC    = lexer.CommandTOC
	CommandTOS    = lexer.CommandTOS
	CommandTPC    = lexer.CommandTPC
	CommandTPS    = lexer.CommandTPS
	CommandTOP    = lexer.CommandTOP
	CommandTPP    = lexer.CommandTPP
	CommandAinHH  = lexer.CommandAinHH
	CommandNewHH  = lexer.CommandNewHH
	CommandNewLC  = lexer.CommandNewLC
	CommandNewLE  = lexer.CommandNewLE
	CommandNewLXG = lexer.CommandNewLXG
	CommandNewMI  = lexer.CommandNewMI
	CommandNewMS  = lexer.CommandNewMS
	CommandNewMT  = lexer.CommandNewMT
	CommandNewNT  = lexer.CommandNewNT
	CommandNewQE  = lexer.CommandNewQE
	CommandNewUP  = lexer.CommandNewUP
	CommandNewF   = lexer.CommandNewF
	CommandAinH   = lexer.CommandAinH
	CommandMHH    = lexer.CommandMHH
	CommandLXWT   = lexer.CommandLXWT
	CommandLXWS   = lexer.CommandLXWS
	CommandLXWE   = lexer.CommandLXWE
	CommandLXWH   = lexer.CommandLXWH
	CommandLXWHH  = lexer.CommandLXWHH
	CommandLXF    = lexer.CommandLXF
	CommandAinX   = lexer.CommandAinX
)

// CommandTAA and CommandTAB are not synthetic: replaceCommand leaves them as
// their literal packed 3-letter values (see command.go's special case), so
// they're spelled directly here rather than re-exported from the lexer's
// synthetic-identifier block.
var (
	CommandTAA = CMD3('T', 'A', 'A')
	CommandTAB = CMD3('T', 'A', 'B')
)
